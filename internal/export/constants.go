package export

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ShipDateBlank   = "blank"
	ShipDateRunDate = "run_date"
)

// Constants - данные отправителя и биллинга, одинаковые для каждой строки выгрузки.
// Загружаются при старте (config), дальше только читаются.
type Constants struct {
	SenderPhone         string `yaml:"sender_phone" envconfig:"SENDER_PHONE"`
	SenderZip           string `yaml:"sender_zip" envconfig:"SENDER_ZIP"`
	SenderAddress       string `yaml:"sender_address" envconfig:"SENDER_ADDRESS"`
	SenderName          string `yaml:"sender_name" envconfig:"SENDER_NAME"`
	BillingCustomerCode string `yaml:"billing_customer_code" envconfig:"BILLING_CUSTOMER_CODE"`
	BillingClassCode    string `yaml:"billing_class_code" envconfig:"BILLING_CLASS_CODE"`
	FreightNo           string `yaml:"freight_no" envconfig:"FREIGHT_NO"`
	ItemName            string `yaml:"item_name" envconfig:"ITEM_NAME"`
	DefaultServiceType  string `yaml:"default_service_type" envconfig:"DEFAULT_SERVICE_TYPE"`
	ShipDatePolicy      string `yaml:"ship_date_policy" envconfig:"SHIP_DATE_POLICY"`
	FileBaseName        string `yaml:"file_base_name" envconfig:"FILE_BASE_NAME"`
}

func DefaultConstants() Constants {
	return Constants{
		SenderPhone:        "09000000000",
		SenderZip:          "1234567",
		SenderAddress:      "大阪府大阪市中央区○○1-2-3",
		SenderName:         "nursery sera",
		FreightNo:          "01",
		ItemName:           "フラワーギフト",
		DefaultServiceType: string(ServiceStandard),
		ShipDatePolicy:     ShipDateBlank,
		FileBaseName:       "orders_b2",
	}
}

func (c Constants) Validate() error {
	var errs []error
	if !ServiceType(c.DefaultServiceType).Valid() {
		errs = append(errs, fmt.Errorf("default_service_type %q is not a known service code", c.DefaultServiceType))
	}
	if c.ShipDatePolicy != ShipDateBlank && c.ShipDatePolicy != ShipDateRunDate {
		errs = append(errs, fmt.Errorf("ship_date_policy must be %q or %q, got %q", ShipDateBlank, ShipDateRunDate, c.ShipDatePolicy))
	}
	if strings.TrimSpace(c.FileBaseName) == "" {
		errs = append(errs, errors.New("file_base_name is empty"))
	}
	return errors.Join(errs...)
}
