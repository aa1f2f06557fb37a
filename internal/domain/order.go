package domain

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Order - заказ из формы, как он лежит в таблице orders.
// Необязательные текстовые поля хранятся как "" если их не прислали.
type Order struct {
	ID           int64      `json:"id"`
	LastName     string     `json:"last_name"`
	FirstName    string     `json:"first_name"`
	Zipcode      string     `json:"zipcode"`
	Prefecture   string     `json:"prefecture"`
	City         string     `json:"city"`
	Address      string     `json:"address"`
	Building     string     `json:"building"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Instagram    string     `json:"instagram"`
	DeliveryDate *time.Time `json:"delivery_date"`
	TimeSlot     string     `json:"time_slot"`
	Memo         string     `json:"memo"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CustomerData struct {
	LastName   string `json:"lastName" validate:"max=100"`
	FirstName  string `json:"firstName" validate:"max=100"`
	Zipcode    string `json:"zipcode" validate:"max=16"`
	Prefecture string `json:"prefecture" validate:"max=50"`
	City       string `json:"city" validate:"max=200"`
	Address    string `json:"address" validate:"max=200"`
	Building   string `json:"building" validate:"max=200"`
	Phone      string `json:"phone" validate:"max=32"`
	Email      string `json:"email" validate:"max=254"`
	Instagram  string `json:"instagram" validate:"max=100"`
}

type DeliveryData struct {
	DesiredDate string `json:"desired_date" validate:"max=32"`
	DesiredTime string `json:"desired_time" validate:"max=64"`
}

// IntakeForm - тело POST /api/orders (и сообщения из kafka intake топика).
type IntakeForm struct {
	Customer CustomerData `json:"customer"`
	Delivery DeliveryData `json:"delivery"`
	Note     string       `json:"note" validate:"max=1000"`
}

// ToOrder переводит форму в заказ: пустые строки и пробелы считаются отсутствием значения,
// нераспознанная дата доставки - тоже.
func (f IntakeForm) ToOrder() Order {
	c := f.Customer
	return Order{
		LastName:     nn(c.LastName),
		FirstName:    nn(c.FirstName),
		Zipcode:      nn(c.Zipcode),
		Prefecture:   nn(c.Prefecture),
		City:         nn(c.City),
		Address:      nn(c.Address),
		Building:     nn(c.Building),
		Phone:        nn(c.Phone),
		Email:        nn(c.Email),
		Instagram:    nn(c.Instagram),
		DeliveryDate: ParseDate(f.Delivery.DesiredDate),
		TimeSlot:     nn(f.Delivery.DesiredTime),
		Memo:         nn(f.Note),
	}
}

func nn(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	time.RFC3339,
}

// ParseDate разбирает желаемую дату доставки. Календарная дата берётся как есть,
// без перевода в другой часовой пояс. Пустая или невалидная строка даёт nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в сообщениях об ошибках - json имена полей
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate проверяет struct по тегам validate. В ошибках - json имена полей.
func Validate(v any) error {
	return validate.Struct(v)
}

// Validate проверяет длины полей формы. Ошибка - validator.ValidationErrors.
func (f IntakeForm) Validate() error {
	return Validate(f)
}
