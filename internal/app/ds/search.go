package ds

const (
	FieldJobHistory = "job_history"
	FieldCompany    = "company"
	FieldEmail      = "email"
	FieldCity       = "city"
	FieldCountry    = "country"
	FieldName       = "name"
)

// SearchFields поля, по которым разрешён поиск, в порядке проверки
var SearchFields = []string{
	FieldJobHistory,
	FieldCompany,
	FieldEmail,
	FieldCity,
	FieldCountry,
	FieldName,
}

// IsSearchField проверяет, что поле входит в SearchFields
func IsSearchField(field string) bool {
	for _, f := range SearchFields {
		if f == field {
			return true
		}
	}
	return false
}

// SearchResponse тело ответа GET /search
type SearchResponse struct {
	Results []Contact `json:"results"`
	Total   int       `json:"total"`
}

// ColumnDef описание колонки таблицы результатов
type ColumnDef struct {
	HeaderName string `json:"headerName"`
	Field      string `json:"field,omitempty"`
	Width      int    `json:"width"`
}

// ColumnDefs колонки таблицы. Колонка ID без поля: её значение это индекс строки.
var ColumnDefs = []ColumnDef{
	{HeaderName: "ID", Width: 55},
	{HeaderName: "Name", Field: FieldName, Width: 100},
	{HeaderName: "Email", Field: FieldEmail, Width: 120},
	{HeaderName: "Company", Field: FieldCompany, Width: 120},
	{HeaderName: "City", Field: FieldCity, Width: 90},
	{HeaderName: "Country", Field: FieldCountry, Width: 110},
	{HeaderName: "Job History", Field: FieldJobHistory, Width: 180},
}

// QueryStat частота поискового запроса
type QueryStat struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}
