package export

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/RaikyD/b2-orders-service/internal/domain"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	CharsetUTF8     = "utf-8"
	CharsetShiftJIS = "shift_jis"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// B2 クラウド работает по японскому времени, дата запуска считается в JST.
var jst = time.FixedZone("JST", 9*60*60)

// BuildOptions - параметры одной выгрузки.
type BuildOptions struct {
	// Columns == nil - все колонки реестра. Пустой не-nil срез - явный пустой выбор (ErrNoColumns).
	Columns   []string
	Overrides map[int64]string
	Format    string
	Charset   string
	// RunDate - дата запуска; нулевое значение = сейчас.
	RunDate time.Time
}

// Result - готовый файл выгрузки, целиком в памяти.
type Result struct {
	ID          uuid.UUID
	Filename    string
	ContentType string
	Format      string
	Charset     string
	Payload     []byte
	Rows        int
	Columns     []ColumnDefinition
}

// Builder собирает файл B2 из заказов. Состояния между вызовами не держит.
type Builder struct {
	registry *Registry
	mapper   *Mapper
	consts   Constants
	now      func() time.Time
}

func NewBuilder(reg *Registry, c Constants) *Builder {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Builder{
		registry: reg,
		mapper:   NewMapper(c),
		consts:   c,
		now:      time.Now,
	}
}

func (b *Builder) Registry() *Registry { return b.registry }

// Build строит файл. Строки идут в порядке orders, колонки - в порядке реестра.
func (b *Builder) Build(orders []domain.Order, opts BuildOptions) (*Result, error) {
	format, charset, err := normalizeFormat(opts.Format, opts.Charset)
	if err != nil {
		return nil, err
	}
	cols, err := b.resolveColumns(opts.Columns)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNoSelection
	}

	runDate := opts.RunDate
	if runDate.IsZero() {
		runDate = b.now().In(jst)
	}
	def := ServiceType(b.consts.DefaultServiceType)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Title
	}

	rows := make([][]string, 0, len(orders))
	for i, o := range orders {
		rec := b.mapper.Map(o, i+1, runDate, ResolveServiceType(def, opts.Overrides, o.ID))
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = c.Value(&rec)
		}
		rows = append(rows, row)
	}

	res := &Result{
		ID:      uuid.New(),
		Format:  format,
		Charset: charset,
		Rows:    len(rows),
		Columns: cols,
	}
	switch format {
	case FormatXLSX:
		res.Payload, err = encodeXLSX(header, rows)
		res.ContentType = xlsxContentType
	default:
		res.Payload, err = encodeCSV(header, rows, charset)
		res.ContentType = csvContentType(charset)
	}
	if err != nil {
		return nil, err
	}
	res.Filename = fmt.Sprintf("%s_%s.%s", b.consts.FileBaseName, runDate.Format("20060102"), format)
	return res, nil
}

func (b *Builder) resolveColumns(ids []string) ([]ColumnDefinition, error) {
	if ids == nil {
		return b.registry.All(), nil
	}
	cols, err := b.registry.Resolve(ids)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	return cols, nil
}

func normalizeFormat(format, charset string) (string, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	charset = strings.ToLower(strings.TrimSpace(charset))
	if format == "" {
		format = FormatCSV
	}
	switch charset {
	case "", "utf8", CharsetUTF8:
		charset = CharsetUTF8
	case "sjis", "shift-jis", CharsetShiftJIS:
		charset = CharsetShiftJIS
	default:
		return "", "", ErrInvalidFormat
	}
	switch format {
	case FormatCSV:
	case FormatXLSX:
		if charset != CharsetUTF8 {
			return "", "", ErrInvalidFormat
		}
	default:
		return "", "", ErrInvalidFormat
	}
	return format, charset, nil
}

func csvContentType(charset string) string {
	if charset == CharsetShiftJIS {
		return "text/csv; charset=Shift_JIS"
	}
	return "text/csv; charset=utf-8"
}

// encodeCSV пишет CSV в буфер. Поле берётся в кавычки только если в нём есть
// разделитель, кавычка или перевод строки.
func encodeCSV(header []string, rows [][]string, charset string) ([]byte, error) {
	var buf bytes.Buffer
	var dst io.Writer = &buf
	var enc *transform.Writer
	if charset == CharsetShiftJIS {
		enc = transform.NewWriter(&buf, japanese.ShiftJIS.NewEncoder())
		dst = enc
	}

	w := bufio.NewWriter(dst)
	if err := writeCSVRecord(w, header); err != nil {
		return nil, &EncodingError{Stage: "header", Err: err}
	}
	for i, row := range rows {
		if err := writeCSVRecord(w, row); err != nil {
			return nil, &EncodingError{Stage: fmt.Sprintf("row %d", i+1), Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return nil, &EncodingError{Stage: "flush", Err: err}
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return nil, &EncodingError{Stage: "charset", Err: err}
		}
	}
	return buf.Bytes(), nil
}

func writeCSVRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if !strings.ContainsAny(f, ",\"\r\n") {
			if _, err := w.WriteString(f); err != nil {
				return err
			}
			continue
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func encodeXLSX(header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, &EncodingError{Stage: "xlsx", Err: err}
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, &EncodingError{Stage: fmt.Sprintf("xlsx row %d", i), Err: err}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &EncodingError{Stage: "xlsx", Err: err}
	}
	return buf.Bytes(), nil
}
