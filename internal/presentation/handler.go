package presentation

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/RaikyD/b2-orders-service/internal/application"
	"github.com/RaikyD/b2-orders-service/internal/domain"
	"github.com/RaikyD/b2-orders-service/internal/export"
	"github.com/RaikyD/b2-orders-service/internal/logger"
	"github.com/RaikyD/b2-orders-service/internal/presentation/helpers"
)

const (
	SourceHTTP = "http"

	maxBodyBytes = 2 << 20
)

type OrdersHandler struct {
	svc *application.OrdersService
}

func NewOrdersHandler(svc *application.OrdersService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/csv", h.ExportAll)
		r.Post("/csv", h.ExportSelected)
		r.Get("/csv/columns", h.Columns)
	})
}

// тело формы принимаем в трёх видах:
// - application/json:    объект domain.IntakeForm
// - text/plain:          строка с JSON внутри
// - multipart/form-data: файл .json в поле "file"
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	mediatype, params, _ := mime.ParseMediaType(ct)
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var form domain.IntakeForm
	var readErr error

	switch mediatype {
	case "application/json":
		readErr = helpers.DecodeJSON(body, &form)

	case "text/plain":
		raw, err := io.ReadAll(body)
		if err != nil {
			readErr = err
			break
		}
		readErr = json.Unmarshal(raw, &form)

	case "multipart/form-data":
		readErr = errors.New(`multipart body has no "file" part`)
		mr := multipart.NewReader(body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				readErr = err
				break
			}
			if part.FormName() != "file" {
				continue
			}
			readErr = helpers.DecodeJSON(bufio.NewReader(part), &form)
			_ = part.Close()
			break
		}

	default:
		helpers.HttpError(w, http.StatusUnsupportedMediaType, "unsupported content-type")
		return
	}

	if readErr != nil {
		helpers.HttpErrorCode(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+readErr.Error(), nil)
		return
	}
	if err := form.Validate(); err != nil {
		helpers.HttpErrorCode(w, http.StatusBadRequest, "VALIDATION_FAILED",
			helpers.ValidationMessage(err), helpers.ValidationDetails(err))
		return
	}

	o, err := h.svc.AddOrder(r.Context(), form, SourceHTTP)
	if err != nil {
		h.writeError(w, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, map[string]any{
		"ok": true,
		"id": o.ID,
	})
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	helpers.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) Columns(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.svc.Columns())
}

// ExportAll - старый GET: все заказы, новые первыми. ?columns=a,b&format=xlsx&charset=sjis
func (h *OrdersHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := export.Request{
		All:     true,
		Format:  q.Get("format"),
		Charset: q.Get("charset"),
	}
	// параметр columns есть, но пустой - это явный пустой выбор
	if vals, ok := q["columns"]; ok {
		req.Columns = []string{}
		for _, v := range vals {
			req.Columns = append(req.Columns, strings.Split(v, ",")...)
		}
	}
	h.export(w, r, req)
}

type selectionDTO struct {
	ID                  int64         `json:"id"`
	ServiceTypeOverride overrideValue `json:"serviceTypeOverride"`
}

// overrideValue принимает любое JSON значение. Не строку сохраняем сырым текстом,
// такой код не пройдёт ResolveServiceType и заказ получит вид по умолчанию.
type overrideValue string

func (v *overrideValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = overrideValue(s)
		return nil
	}
	if raw := strings.TrimSpace(string(b)); raw != "null" {
		*v = overrideValue(raw)
	}
	return nil
}

type exportRequestDTO struct {
	Selections []selectionDTO `json:"selections" validate:"max=10000,dive"`
	Columns    []string       `json:"columns" validate:"omitempty,max=64"`
	Format     string         `json:"format" validate:"max=8"`
	Charset    string         `json:"charset" validate:"max=16"`
}

func (h *OrdersHandler) ExportSelected(w http.ResponseWriter, r *http.Request) {
	var dto exportRequestDTO
	if err := helpers.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), &dto); err != nil {
		helpers.HttpErrorCode(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error(), nil)
		return
	}
	if err := domain.Validate(dto); err != nil {
		helpers.HttpErrorCode(w, http.StatusBadRequest, "VALIDATION_FAILED",
			helpers.ValidationMessage(err), helpers.ValidationDetails(err))
		return
	}

	req := export.Request{
		Selections: make([]export.Selection, len(dto.Selections)),
		Columns:    dto.Columns,
		Format:     dto.Format,
		Charset:    dto.Charset,
	}
	for i, s := range dto.Selections {
		req.Selections[i] = export.Selection{OrderID: s.ID, ServiceType: string(s.ServiceTypeOverride)}
	}
	h.export(w, r, req)
}

func (h *OrdersHandler) export(w http.ResponseWriter, r *http.Request, req export.Request) {
	out, err := h.svc.Export(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("X-Export-Id", out.ID.String())
	w.Header().Set("X-Export-Rows", strconv.Itoa(out.Rows))
	if len(out.Missing) > 0 {
		w.Header().Set("X-Export-Missing", joinIDs(out.Missing))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Payload)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Payload); err != nil {
		logger.Warn("export write failed", "id", out.ID, "err", err)
	}
}

// writeError переводит ошибки сервиса в HTTP ответ.
func (h *OrdersHandler) writeError(w http.ResponseWriter, err error) {
	var (
		ve *export.ValidationError
		uc *export.UnknownColumnError
		se *export.StoreError
		ee *export.EncodingError
	)
	switch {
	case errors.As(err, &ve):
		helpers.HttpErrorCode(w, http.StatusBadRequest, ve.Code, ve.Message, nil)
	case errors.As(err, &uc):
		helpers.HttpErrorCode(w, http.StatusBadRequest, uc.Code(), uc.Error(), map[string]any{"unknown": uc.IDs})
	case errors.As(err, &se):
		helpers.HttpErrorCode(w, http.StatusInternalServerError, "STORE_ERROR", "order store unavailable", nil)
	case errors.As(err, &ee):
		helpers.HttpErrorCode(w, http.StatusInternalServerError, "ENCODING_ERROR", "failed to encode export", map[string]any{"stage": ee.Stage})
	default:
		logger.Error("unhandled error", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "internal error")
	}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
