package export

// Selection - выбранный заказ и, опционально, его тип отправления.
type Selection struct {
	OrderID     int64  `json:"id"`
	ServiceType string `json:"serviceTypeOverride,omitempty"`
}

// Request - запрос на выгрузку.
// Selections пуст и All == true - выгружаются все заказы (старый GET /api/orders/csv).
type Request struct {
	Selections []Selection
	All        bool
	Columns    []string
	Format     string
	Charset    string
}

// Validate проверяет выбор заказов до похода в хранилище.
func (r Request) Validate() error {
	if len(r.Selections) == 0 {
		if r.All {
			return nil
		}
		return ErrNoSelection
	}
	seen := make(map[int64]struct{}, len(r.Selections))
	for _, s := range r.Selections {
		if s.OrderID <= 0 {
			return ErrInvalidSelection
		}
		if _, dup := seen[s.OrderID]; dup {
			return ErrDuplicateSelection
		}
		seen[s.OrderID] = struct{}{}
	}
	return nil
}

// IDs - id заказов в порядке выбора.
func (r Request) IDs() []int64 {
	ids := make([]int64, len(r.Selections))
	for i, s := range r.Selections {
		ids[i] = s.OrderID
	}
	return ids
}

// Overrides - явные типы отправления по id; пустые не попадают.
func (r Request) Overrides() map[int64]string {
	out := make(map[int64]string)
	for _, s := range r.Selections {
		if s.ServiceType != "" {
			out[s.OrderID] = s.ServiceType
		}
	}
	return out
}
