package translate

import (
	"golang.org/x/text/language"
)

// catalogue holds the non-English renditions of the core messages.
var catalogue = map[language.Tag]map[string]string{
	language.Russian: {
		// Assembler
		"instruction unknown":             "неизвестная инструкция",
		"unknown instruction %v":          "неизвестная команда ассемблера %v",
		"operand unknown":                 "неизвестный операнд",
		"unknown operand: %v":             "неизвестный операнд: %v",
		"register out of range":           "регистр вне диапазона",
		"unknown register: %v":            "неизвестный регистр: %v",
		"operand field overflow":          "переполнение поля операнда",
		"value %v does not fit %v bits":   "значение %v не помещается в %v бит",
		"immediate destination":           "непосредственный операнд в качестве приёмника",
		"excessive operands":              "лишние операнды",
		"label duplicated":                "повторное объявление метки",
		"label %v missing":                "метка %v не найдена",
		"label invalid":                   "недопустимое имя метки",
		".equ syntax":                     "синтаксис .equ",
		".equ duplicated":                 "повторное объявление .equ",
		"'%v' is not a number":            "'%v' не является числом",
		"$(%v) is not a valid expression": "$(%v) не является допустимым выражением",
		"line %d '%v' %v":                 "строка %d '%v' %v",

		// Processor
		"opcode not implemented":   "команда не реализована",
		"addressing mode invalid":  "неизвестный режим адресации",
		"destination not writable": "неподдерживаемая операция записи для режима адресации",
		"address out of range":     "адрес вне памяти",
		"jump out of range":        "переход за пределы программы",
		"capacity exceeded":        "недостаточно памяти",
		"bad opcode 0x%04x %v":     "неверная команда 0x%04x %v",

		// Emulator
		"line %d %v":         "строка %d %v",
		"tick limit reached": "достигнут предел шагов",
		"program finished":   "программа завершила своё выполнение",
		"empty program":      "поле ввода команд пустое",
	},
}
