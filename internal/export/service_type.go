package export

// ServiceType - код вида накладной (送り状種類) в формате B2.
type ServiceType string

const (
	ServiceStandard ServiceType = "0" // 発払い
	ServiceCompact  ServiceType = "A" // ネコポス
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceStandard, ServiceCompact:
		return true
	}
	return false
}

// ResolveServiceType отдаёт override для заказа, если он есть и валиден, иначе def.
// Кривой override не валит выгрузку целиком.
func ResolveServiceType(def ServiceType, overrides map[int64]string, orderID int64) ServiceType {
	if v, ok := overrides[orderID]; ok {
		if st := ServiceType(v); st.Valid() {
			return st
		}
	}
	if !def.Valid() {
		return ServiceStandard
	}
	return def
}
