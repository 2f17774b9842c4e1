package domain

// Sort описывает разрешённый порядок выборки. Колонка всегда берётся из
// allow-list на уровне сервиса, поэтому репозитории могут подставлять её
// в запрос без дополнительной проверки.
type Sort struct {
	Column string
	Desc   bool
}

// IsZero сообщает, что порядок не задан и выборка идёт в порядке по умолчанию.
func (s Sort) IsZero() bool {
	return s.Column == ""
}
