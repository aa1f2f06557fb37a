package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/RaikyD/b2-orders-service/internal/domain"
)

// Record - одна строка выгрузки B2 со всеми колонками реестра.
type Record struct {
	ManageNo            string
	SlipType            string
	CoolType            string
	SlipNo              string
	ShipDate            string
	DeliveryDate        string
	TimeSlot            string
	DestPhone           string
	DestZip             string
	DestAddress         string
	DestBuilding        string
	DestCompany         string
	DestName            string
	DestNameKana        string
	Honorific           string
	ItemCode1           string
	ItemName1           string
	Quantity            string
	Note                string
	SenderPhone         string
	SenderZip           string
	SenderAddress       string
	SenderName          string
	BillingCustomerCode string
	BillingClassCode    string
	FreightNo           string
}

const (
	coolNormal   = "0"
	honorificSam = "様"
	defaultQty   = "1"
)

// Mapper строит Record из заказа, подставляя константы отправителя.
type Mapper struct {
	consts Constants
}

func NewMapper(c Constants) *Mapper {
	return &Mapper{consts: c}
}

// Map собирает строку. seq - номер строки внутри одной выгрузки (с 1),
// runDate - дата запуска выгрузки (нужна только при политике run_date).
func (m *Mapper) Map(o domain.Order, seq int, runDate time.Time, st ServiceType) Record {
	c := m.consts

	var shipDate string
	if c.ShipDatePolicy == ShipDateRunDate {
		shipDate = FormatDate(&runDate)
	}

	return Record{
		ManageNo:            fmt.Sprintf("%04d", seq),
		SlipType:            string(st),
		CoolType:            coolNormal,
		ShipDate:            shipDate,
		DeliveryDate:        FormatDate(o.DeliveryDate),
		TimeSlot:            NormalizeTimeSlot(o.TimeSlot),
		DestPhone:           strings.TrimSpace(o.Phone),
		DestZip:             digitsOnly(o.Zipcode),
		DestAddress:         JoinParts([]string{o.Prefecture, o.City, o.Address}, ""),
		DestBuilding:        JoinParts([]string{o.Building}, ""),
		DestName:            JoinParts([]string{o.LastName, o.FirstName}, " "),
		Honorific:           honorificSam,
		ItemName1:           c.ItemName,
		Quantity:            defaultQty,
		Note:                o.Memo,
		SenderPhone:         c.SenderPhone,
		SenderZip:           c.SenderZip,
		SenderAddress:       c.SenderAddress,
		SenderName:          c.SenderName,
		BillingCustomerCode: c.BillingCustomerCode,
		BillingClassCode:    c.BillingClassCode,
		FreightNo:           c.FreightNo,
	}
}
