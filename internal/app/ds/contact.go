package ds

import "strings"

// Contact строка таблицы contacts; job_history хранится строкой через ", "
type Contact struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	Name       string `gorm:"type:varchar(255) not null;default:''" json:"name"`
	Email      string `gorm:"type:varchar(255) not null;default:''" json:"email"`
	Company    string `gorm:"type:varchar(255) not null;default:''" json:"company"`
	City       string `gorm:"type:varchar(255) not null;default:''" json:"city"`
	Country    string `gorm:"type:varchar(255) not null;default:''" json:"country"`
	JobHistory string `gorm:"type:text not null;default:''" json:"job_history"`
}

// ContactRecord запись датасета в исходном формате (job_history списком)
type ContactRecord struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Company    string   `json:"company"`
	City       string   `json:"city"`
	Country    string   `json:"country"`
	JobHistory []string `json:"job_history"`
}

// ContactsFromRecords переводит датасет в строки таблицы.
// ID назначаются по порядку датасета, начиная с 1.
func ContactsFromRecords(records []ContactRecord) []Contact {
	contacts := make([]Contact, 0, len(records))
	for i, rec := range records {
		contacts = append(contacts, Contact{
			ID:         uint(i + 1),
			Name:       rec.Name,
			Email:      rec.Email,
			Company:    rec.Company,
			City:       rec.City,
			Country:    rec.Country,
			JobHistory: strings.Join(rec.JobHistory, ", "),
		})
	}
	return contacts
}

// FieldValue возвращает значение поискового поля по имени колонки
func (c Contact) FieldValue(field string) (string, bool) {
	switch field {
	case FieldJobHistory:
		return c.JobHistory, true
	case FieldCompany:
		return c.Company, true
	case FieldEmail:
		return c.Email, true
	case FieldCity:
		return c.City, true
	case FieldCountry:
		return c.Country, true
	case FieldName:
		return c.Name, true
	}
	return "", false
}
