package export

import "strings"

// ColumnDefinition - колонка файла B2. Клиенты ссылаются на колонки только по ID.
type ColumnDefinition struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	value func(*Record) string
}

// Value достаёт значение колонки из строки.
func (c ColumnDefinition) Value(r *Record) string {
	if c.value == nil {
		return ""
	}
	return c.value(r)
}

// Registry - упорядоченный мастер-список колонок. Порядок реестра = порядок колонок в файле.
type Registry struct {
	cols  []ColumnDefinition
	index map[string]int
}

func NewRegistry(cols []ColumnDefinition) *Registry {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := idx[c.ID]; dup {
			panic("export: duplicate column id " + c.ID)
		}
		idx[c.ID] = i
	}
	return &Registry{cols: cols, index: idx}
}

var defaultRegistry = NewRegistry([]ColumnDefinition{
	{ID: "manage_no", Title: "お客様管理番号", value: func(r *Record) string { return r.ManageNo }},
	{ID: "slip_type", Title: "送り状種類", value: func(r *Record) string { return r.SlipType }},
	{ID: "cool_type", Title: "クール区分", value: func(r *Record) string { return r.CoolType }},
	{ID: "den_no", Title: "伝票番号", value: func(r *Record) string { return r.SlipNo }},
	{ID: "ship_date", Title: "出荷予定日", value: func(r *Record) string { return r.ShipDate }},
	{ID: "delivery_date", Title: "お届け予定日", value: func(r *Record) string { return r.DeliveryDate }},
	{ID: "time_slot", Title: "お届け時間帯", value: func(r *Record) string { return r.TimeSlot }},
	{ID: "dest_phone", Title: "お届け先電話番号", value: func(r *Record) string { return r.DestPhone }},
	{ID: "dest_zip", Title: "お届け先郵便番号", value: func(r *Record) string { return r.DestZip }},
	{ID: "dest_addr", Title: "お届け先住所", value: func(r *Record) string { return r.DestAddress }},
	{ID: "dest_building", Title: "お届け先アパートマンション名", value: func(r *Record) string { return r.DestBuilding }},
	{ID: "dest_company", Title: "お届け先会社・部門名", value: func(r *Record) string { return r.DestCompany }},
	{ID: "dest_name", Title: "お届け先名", value: func(r *Record) string { return r.DestName }},
	{ID: "dest_name_kana", Title: "お届け先名(カナ)", value: func(r *Record) string { return r.DestNameKana }},
	{ID: "title", Title: "敬称", value: func(r *Record) string { return r.Honorific }},
	{ID: "item_code1", Title: "品名コード1", value: func(r *Record) string { return r.ItemCode1 }},
	{ID: "item_name1", Title: "品名1", value: func(r *Record) string { return r.ItemName1 }},
	{ID: "qty", Title: "出荷個数", value: func(r *Record) string { return r.Quantity }},
	{ID: "note", Title: "記事", value: func(r *Record) string { return r.Note }},
	{ID: "sender_phone", Title: "発送元電話番号", value: func(r *Record) string { return r.SenderPhone }},
	{ID: "sender_zip", Title: "発送元郵便番号", value: func(r *Record) string { return r.SenderZip }},
	{ID: "sender_addr", Title: "発送元住所", value: func(r *Record) string { return r.SenderAddress }},
	{ID: "sender_name", Title: "発送元名", value: func(r *Record) string { return r.SenderName }},
	{ID: "billing_customer_code", Title: "請求先顧客コード", value: func(r *Record) string { return r.BillingCustomerCode }},
	{ID: "billing_class_code", Title: "請求先分類コード", value: func(r *Record) string { return r.BillingClassCode }},
	{ID: "freight_no", Title: "運賃管理番号", value: func(r *Record) string { return r.FreightNo }},
})

// DefaultRegistry - реестр формата B2 クラウド.
func DefaultRegistry() *Registry { return defaultRegistry }

// All возвращает копию всех колонок в порядке реестра.
func (r *Registry) All() []ColumnDefinition {
	out := make([]ColumnDefinition, len(r.cols))
	copy(out, r.cols)
	return out
}

// IDs - id всех колонок по порядку.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.cols))
	for i, c := range r.cols {
		ids[i] = c.ID
	}
	return ids
}

// Resolve фильтрует реестр по набору ids. Порядок берётся из реестра, а не из запроса.
// Пустые строки игнорируются; неизвестный id - UnknownColumnError.
func (r *Registry) Resolve(ids []string) ([]ColumnDefinition, error) {
	want := make(map[string]struct{}, len(ids))
	var unknown []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := r.index[id]; !ok {
			unknown = append(unknown, id)
			continue
		}
		want[id] = struct{}{}
	}
	if len(unknown) > 0 {
		return nil, &UnknownColumnError{IDs: unknown}
	}

	out := make([]ColumnDefinition, 0, len(want))
	for _, c := range r.cols {
		if _, ok := want[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
