package models

// Category — закрытое перечисление контентных категорий.
// Один и тот же набор используется для локального и международного регионов.
//
// Исторически идентификаторы локальных источников жили в том же
// перечислении, что и категории; здесь они разведены в два типа
// (Category и LocalOutlet), HTTP-слой продолжает принимать старые id.
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryTechnology    Category = "technology"
	CategoryBusiness      Category = "business"
	CategoryScience       Category = "science"
	CategoryHealth        Category = "health"
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
)

// Categories — полный список категорий в порядке отображения.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryTechnology,
		CategoryBusiness,
		CategoryScience,
		CategoryHealth,
		CategorySports,
		CategoryEntertainment,
	}
}

// ValidCategory сообщает, входит ли значение в перечисление.
func ValidCategory(value string) bool {
	for _, c := range Categories() {
		if string(c) == value {
			return true
		}
	}

	return false
}

// Region — регион выборки: локальные источники (RSS) или международные (API).
type Region string

const (
	RegionLocal         Region = "local"
	RegionInternational Region = "international"
)

// LocalOutlet — идентификатор локального издания.
// Значения совпадают с историческими id из общего перечисления,
// чтобы не ломать внешние ссылки с параметром source.
type LocalOutlet string

const (
	OutletProthomAlo LocalOutlet = "prothom_alo"
	OutletDailyStar  LocalOutlet = "daily_star"
	OutletBBCBengali LocalOutlet = "bbc_bengali"
)

// SourceAll — специальное значение параметра source: все издания сразу.
const SourceAll = "all"

// LocalOutlets — все известные локальные издания.
func LocalOutlets() []LocalOutlet {
	return []LocalOutlet{OutletProthomAlo, OutletDailyStar, OutletBBCBengali}
}

// OutletByID возвращает издание по id (ok=false — id не из перечисления).
func OutletByID(id string) (LocalOutlet, bool) {
	for _, o := range LocalOutlets() {
		if string(o) == id {
			return o, true
		}
	}

	return "", false
}

// DisplayName — отображаемое имя издания.
// Оно же хранится в Article.SourceName и служит ключом фильтра по источнику.
func (o LocalOutlet) DisplayName() string {
	switch o {
	case OutletProthomAlo:
		return "Prothom Alo"
	case OutletDailyStar:
		return "The Daily Star"
	case OutletBBCBengali:
		return "BBC Bengali"
	default:
		return "Unknown"
	}
}

// PlaceholderImage — путь к статической заглушке обложки издания.
func (o LocalOutlet) PlaceholderImage() string {
	switch o {
	case OutletProthomAlo:
		return "/static/prothom_alo.png"
	case OutletDailyStar:
		return "/static/daily_star.png"
	case OutletBBCBengali:
		return "/static/bbc_bengali.png"
	default:
		return "/static/news_default.png"
	}
}

// LocalSourceNames — список отображаемых имён локальных изданий.
// Международная часть определяется как «всё, что не из этого списка».
func LocalSourceNames() []string {
	outlets := LocalOutlets()
	names := make([]string, 0, len(outlets))

	for _, o := range outlets {
		names = append(names, o.DisplayName())
	}

	return names
}
