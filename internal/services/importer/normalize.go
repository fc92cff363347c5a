package importer

import "strings"

// headerMap — фиксированная таблица перевода китайских заголовков выгрузки
// в канонические поля. Адаптер формата, не бизнес-логика: новые колонки
// добавляются здесь, не в алгоритме сверки.
var headerMap = map[string]string{
	"快递单号": "trackNumber",
	"总单号":  "batchNumber",
	"客户姓名": "clientCode",
	"添加时间": "addedDate",
	"更新时间": "updatedDate",
	"状态":   "status",
}

// NormalizedRow — одна строка листа с каноническими полями. Отсутствующие
// ячейки — пустые строки, никогда не nil. Нераспознанные заголовки
// сохраняются как есть в Extra и дальше не используются.
type NormalizedRow struct {
	TrackNumber string
	BatchNumber string
	ClientCode  string
	AddedDate   string
	UpdatedDate string
	StatusLabel string
	Extra       map[string]string
}

// NormalizeRows переводит сырые строки (произвольный заголовок → ячейка)
// в NormalizedRow, сохраняя порядок строк. Валидации здесь нет —
// она выполняется при сверке, чтобы ошибки несли номер строки.
func NormalizeRows(raw []map[string]string) []NormalizedRow {
	out := make([]NormalizedRow, 0, len(raw))
	for _, rec := range raw {
		var row NormalizedRow
		for key, value := range rec {
			v := strings.TrimSpace(value)
			switch headerMap[strings.TrimSpace(key)] {
			case "trackNumber":
				row.TrackNumber = v
			case "batchNumber":
				row.BatchNumber = v
			case "clientCode":
				row.ClientCode = v
			case "addedDate":
				row.AddedDate = v
			case "updatedDate":
				row.UpdatedDate = v
			case "status":
				row.StatusLabel = v
			default:
				if row.Extra == nil {
					row.Extra = map[string]string{}
				}
				row.Extra[key] = v
			}
		}
		out = append(out, row)
	}
	return out
}
