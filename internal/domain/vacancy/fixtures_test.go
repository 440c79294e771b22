package vacancy

import (
	"encoding/json"
	"testing"
)

// hhPage is a trimmed hh.ru search page used across the package tests.
//
//	0: both salary bounds          4: Java, from only (max salary)
//	1: salary null                 5: both bounds, from > to
//	2: from only                   6: no snippet, null bounds
//	3: to only                     7: from only, ties with #0
const hhPage = `[
  {
    "id": "93353083",
    "name": "Тестировщик комфорта квартир",
    "area": {"id": "26", "name": "Воронеж"},
    "salary": {"from": 350000, "to": 450000, "currency": "RUR", "gross": false},
    "published_at": "2024-02-16T14:58:28+0300",
    "alternate_url": "https://hh.ru/vacancy/93353083",
    "employer": {"id": "9", "name": "Домашний уют"},
    "schedule": {"id": "flexible", "name": "Гибкий график"},
    "employment": {"id": "full", "name": "Полная занятость"},
    "experience": {"id": "noExperience", "name": "Нет опыта"},
    "snippet": {
      "requirement": "Занимать активную жизненную позицию.",
      "responsibility": "Проверять комфорт квартир."
    }
  },
  {
    "id": "93353084",
    "name": "Курьер",
    "area": {"id": "1", "name": "Москва"},
    "salary": null,
    "published_at": "2024-02-16T15:00:00+0300",
    "alternate_url": "https://hh.ru/vacancy/93353084",
    "employer": {"name": "Доставка"},
    "schedule": {"name": "Сменный график"},
    "employment": {"name": "Частичная занятость"},
    "experience": {"name": "Нет опыта"},
    "snippet": {"requirement": "Велосипед.", "responsibility": null}
  },
  {
    "id": "93353085",
    "name": "Стажёр",
    "area": {"name": "Казань"},
    "salary": {"from": 800, "to": null},
    "published_at": "2024-02-16T15:01:00+0300",
    "alternate_url": "https://hh.ru/vacancy/93353085",
    "employer": {"name": "Стажировки"},
    "schedule": {"name": "Полный день"},
    "employment": {"name": "Стажировка"},
    "experience": {"name": "Нет опыта"},
    "snippet": {"requirement": null, "responsibility": null}
  },
  {
    "id": "93353086",
    "name": "Аналитик",
    "area": {"name": "Пермь"},
    "salary": {"from": null, "to": 100000},
    "published_at": "2024-02-16T15:02:00+0300",
    "alternate_url": "https://hh.ru/vacancy/93353086",
    "employer": {"name": "Данные"},
    "schedule": {"name": "Удаленная работа"},
    "employment": {"name": "Полная занятость"},
    "experience": {"name": "От 1 года до 3 лет"},
    "snippet": {"requirement": "SQL, Excel.", "responsibility": "Отчёты."}
  },
  {
    "id": "88886759",
    "name": "Java-разработчик",
    "area": {"name": "Ярославль"},
    "salary": {"from": 4000000, "to": null},
    "published_at": "2024-08-08T09:53:11+0300",
    "alternate_url": "https://hh.ru/vacancy/88886759",
    "employer": {"name": "КРИСТА, НПО"},
    "schedule": {"name": "Полный день"},
    "employment": {"name": "Полная занятость"},
    "experience": {"name": "Нет опыта"},
    "snippet": {
      "requirement": "Знание <highlighttext>Java</highlighttext>. Oracle.",
      "responsibility": "Участие в крупных проектах."
    }
  },
  {
    "id": "88886760",
    "name": "Senior Python developer",
    "area": {"name": "Москва"},
    "salary": {"from": 200000, "to": 150000},
    "published_at": "2024-08-08T10:00:00+0300",
    "alternate_url": "https://hh.ru/vacancy/88886760",
    "employer": {"name": "Питон"},
    "schedule": {"name": "Удаленная работа"},
    "employment": {"name": "Полная занятость"},
    "experience": {"name": "Более 6 лет"},
    "snippet": {"requirement": null, "responsibility": "Code review."}
  },
  {
    "id": "88886761",
    "name": "Java Senior",
    "area": {"name": "Самара"},
    "salary": {"from": null, "to": null},
    "published_at": "2024-08-08T11:00:00+0300",
    "alternate_url": "https://hh.ru/vacancy/88886761",
    "employer": {"name": "Самара Софт"},
    "schedule": {"name": "Полный день"},
    "employment": {"name": "Полная занятость"},
    "experience": {"name": "Более 6 лет"}
  },
  {
    "id": "88886762",
    "name": "Тестировщик",
    "area": {"name": "Воронеж"},
    "salary": {"from": 350000},
    "published_at": "2024-08-08T12:00:00+0300",
    "alternate_url": "https://hh.ru/vacancy/88886762",
    "employer": {"name": "Домашний уют"},
    "schedule": {"name": "Полный день"},
    "employment": {"name": "Полная занятость"},
    "experience": {"name": "Нет опыта"},
    "snippet": {"requirement": "Внимательность.", "responsibility": null}
  }
]`

func loadRaws(t *testing.T) []Raw {
	t.Helper()
	var raws []Raw
	if err := json.Unmarshal([]byte(hhPage), &raws); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return raws
}

func loadFields(t *testing.T) []Fields {
	t.Helper()
	fields, err := MapAll(loadRaws(t))
	if err != nil {
		t.Fatalf("MapAll: %v", err)
	}
	return fields
}

func loadVacancies(t *testing.T) []Vacancy {
	t.Helper()
	return ListFrom(loadFields(t))
}
