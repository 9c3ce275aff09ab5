// service содержит бизнес-логику dailydash: сборку фильтров,
// решение о рефреше, реконсиляцию и выдачу заголовков/закладок.
package service

import (
	"context"
	"errors"

	"dailydash/internal/config"
	"dailydash/internal/models"
	"dailydash/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — некорректные входные аргументы.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Fetcher — стратегия получения свежих новостей для региона.
//
// Требования к реализации:
//  1. отказ отдельного источника изолируется внутри Fetch и не
//     превращается в ошибку всей операции;
//  2. каждый элемент помечен категорией, под которой запрошен
//     (CategoryHint), именем источника и, при отсутствии своей
//     обложки, заглушкой;
//  3. реализация обязана уважать ctx (отмена/таймауты).
type Fetcher interface {
	Fetch(ctx context.Context, category models.Category, source string) ([]models.NormalizedArticle, error)
}

// Service — бизнес-логика dailydash.
// Регион диспетчеризуется явно: local -> RSS-фетчер изданий,
// остальное -> клиент top-headlines API.
type Service struct {
	storage       storage.Storage
	local         Fetcher
	international Fetcher
	cfg           config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, cfg config.Config, local, international Fetcher) *Service {
	return &Service{
		storage:       storage,
		local:         local,
		international: international,
		cfg:           cfg,
	}
}
