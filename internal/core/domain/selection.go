package domain

import "sort"

// CategorySelection guarda as categorias que o usuário optou por exibir.
// O valor zero é uma seleção vazia pronta para uso.
type CategorySelection struct {
	categories map[string]struct{}
}

func NewCategorySelection(categories ...string) CategorySelection {
	s := CategorySelection{categories: make(map[string]struct{}, len(categories))}
	for _, c := range categories {
		s.categories[c] = struct{}{}
	}
	return s
}

// SelectionFromCrimes seleciona todas as categorias presentes na lista, que é
// o estado padrão sempre que uma nova lista chega.
func SelectionFromCrimes(crimes []Crime) CategorySelection {
	s := CategorySelection{}
	s.Reset(crimes)
	return s
}

func (s *CategorySelection) Reset(crimes []Crime) {
	s.categories = make(map[string]struct{})
	for _, c := range crimes {
		s.categories[c.Category] = struct{}{}
	}
}

// SelectAll é o mesmo que Reset: só existem as categorias presentes em crimes.
func (s *CategorySelection) SelectAll(crimes []Crime) {
	s.Reset(crimes)
}

func (s *CategorySelection) Clear() {
	s.categories = make(map[string]struct{})
}

func (s *CategorySelection) Toggle(category string) {
	if s.categories == nil {
		s.categories = make(map[string]struct{})
	}
	if _, ok := s.categories[category]; ok {
		delete(s.categories, category)
		return
	}
	s.categories[category] = struct{}{}
}

func (s CategorySelection) Contains(category string) bool {
	_, ok := s.categories[category]
	return ok
}

func (s CategorySelection) Len() int {
	return len(s.categories)
}

func (s CategorySelection) Categories() []string {
	out := make([]string, 0, len(s.categories))
	for c := range s.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
