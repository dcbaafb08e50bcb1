// Package query строит представления списков: фильтрация по подстроке
// (по одному полю или по всем) и устойчивая сортировка по именованному
// ключу. Чистые функции без скрытого состояния, исходный набор записей
// никогда не изменяется.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ScopeAll — поиск по всем перечисленным полям записи.
const ScopeAll = "all"

// Field связывает имя поля со способом приведения его значения к строке.
// Состав полей каждой сущности перечислен явно (см. customer.go, lot.go):
// без рефлексии, чтобы список поиска не расходился с остальными
// объявлениями молча.
type Field[T any] struct {
	Name   string
	String func(T) string
}

// View возвращает отфильтрованное и отсортированное представление набора.
// Фильтр применяется строго до сортировки; сортировка устойчивая, при
// nil-компараторе (неизвестный ключ) порядок записей сохраняется.
func View[T any](records []T, q, scope string, fields []Field[T], cmp func(a, b T) int) []T {
	view := make([]T, 0, len(records))
	for _, rec := range records {
		if matches(rec, q, scope, fields) {
			view = append(view, rec)
		}
	}
	if cmp != nil {
		sort.SliceStable(view, func(i, j int) bool { return cmp(view[i], view[j]) < 0 })
	}
	return view
}

// matches: пустой запрос пропускает всё; иначе подстрока ищется без учёта
// регистра в значении выбранного поля либо хотя бы одного из всех полей.
func matches[T any](rec T, q, scope string, fields []Field[T]) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range fields {
		if scope != ScopeAll && scope != f.Name {
			continue
		}
		if strings.Contains(strings.ToLower(f.String(rec)), q) {
			return true
		}
	}
	return false
}

// Строковые ключи сортировки сравниваются с учётом локали: данные
// русскоязычные. Collator не рассчитан на конкурентное использование,
// поэтому создаётся на каждый вызов сортировки.
func newCollator() *collate.Collator {
	return collate.New(language.Russian)
}
