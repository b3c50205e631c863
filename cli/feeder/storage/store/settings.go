package store

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// OptionValue значение параметра хранилища или значение по умолчанию, если параметр не задан
func OptionValue(settings map[string]string, optionName string, optionDefaultValue string) string {
	optionValue := settings[optionName]
	if optionValue == "" {
		log.Debugf("Ключ '%s' не найден в конфигурации хранилища. Используется значение по умолчанию '%s'.", optionName, optionDefaultValue)
		optionValue = optionDefaultValue
	}

	return optionValue
}

// IntOptionValue как OptionValue, но с разбором целого числа
func IntOptionValue(settings map[string]string, optionName string, optionDefaultValue int) (int, error) {
	raw := settings[optionName]
	if raw == "" {
		return optionDefaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("не удалось получить %s: %v", optionName, err)
	}
	return v, nil
}
