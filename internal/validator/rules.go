package validator

import (
	"log"
	"strings"
	"unicode/utf8"

	"tujitume_backend/internal/lifecycle"
	"tujitume_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// MaxSkillLength - максимальная длина одного навыка
const MaxSkillLength = 50

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться, так как это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// -----------------------------------------------------------------
	// ➡️ Правила, основанные на 'statuses.go'
	// -----------------------------------------------------------------

	// 'is-budget-type': fixed | hourly
	mustRegister("is-budget-type", validateBudgetType)

	// 'is-application-status': pending | accepted | rejected
	mustRegister("is-application-status", validateApplicationStatus)

	// -----------------------------------------------------------------
	// ➡️ Правила листинга гигов
	// -----------------------------------------------------------------

	mustRegister("is-sort-by", validateSortBy)
	mustRegister("is-sort-order", validateSortOrder)

	// 'is-skill-list': каждый навык непустой и не длиннее MaxSkillLength
	mustRegister("is-skill-list", validateSkillList)
}

// --- Функции валидации ---

func validateBudgetType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}
	return models.BudgetType(value).IsValid()
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ApplicationStatus(value).IsValid()
}

func validateSortBy(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	if value == "" {
		return true
	}
	switch lifecycle.SortBy(value) {
	case lifecycle.SortByCreatedAt, lifecycle.SortByBudget:
		return true
	default:
		return false
	}
}

func validateSortOrder(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	if value == "" {
		return true
	}
	switch lifecycle.SortOrder(value) {
	case lifecycle.SortAsc, lifecycle.SortDesc:
		return true
	default:
		return false
	}
}

func validateSkillList(fl validator.FieldLevel) bool {
	field := fl.Field()
	for i := 0; i < field.Len(); i++ {
		skill := strings.TrimSpace(field.Index(i).String())
		if skill == "" || utf8.RuneCountInString(skill) > MaxSkillLength {
			return false
		}
	}
	return true
}
