package console

import (
	"errors"

	"phonebook/contact"
)

var warnings = []struct {
	err          error
	header, text string
}{
	{contact.ErrInvalidName, "Некорректное имя", "Имя может содержать только буквы и пробелы"},
	{contact.ErrDuplicateName, "Контакт уже существует", "Контакт с таким именем уже есть в справочнике"},
	{contact.ErrInvalidNumberFormat, "Некорректный номер", "Номер не соответствует формату"},
	{contact.ErrNearDuplicateNumber, "Некорректный номер", "Номер слишком похож на существующий"},
	{contact.ErrDuplicateNumberInContact, "Номер уже существует", "Этот номер уже есть у контакта"},
}

func warning(err error) (header, text string) {
	for _, w := range warnings {
		if errors.Is(err, w.err) {
			return w.header, w.text
		}
	}
	return "Ошибка", err.Error()
}
