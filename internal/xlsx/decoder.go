package xlsx

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Decoder читает первый лист книги и отдаёт строки как
// "заголовок → ячейка". Порядок строк листа сохраняется.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode парсит .xlsx (и .xls в zip-формате; старый бинарный .xls
// excelize не читает и вернёт ошибку). Первая строка листа — заголовки:
// пустые колонки пропускаются, отсутствующие ячейки становятся "".
func (d *Decoder) Decode(data []byte) ([]map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "read sheet")
	}
	if len(rows) == 0 {
		return []map[string]string{}, nil
	}

	headers := rows[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		for j, h := range headers {
			if h == "" {
				continue
			}
			v := ""
			if j < len(row) {
				v = row[j]
			}
			rec[h] = v
		}
		out = append(out, rec)
	}
	return out, nil
}
