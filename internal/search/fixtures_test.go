package search

import (
	"time"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

type localeText map[domain.Locale]string

type fixture struct {
	id      string
	date    string
	titles  localeText
	excerpt localeText
	body    localeText
	tags    map[domain.Locale][]string
}

func (f fixture) build() *domain.MultiLocaleArticle {
	a := &domain.MultiLocaleArticle{
		ID:     domain.ArticleID(f.id),
		Author: domain.DefaultAuthor(),
	}
	if f.date != "" {
		a.PublishDate, _ = time.Parse("2006-01-02", f.date)
	}
	for _, l := range domain.AllLocales() {
		title, ok := f.titles[l]
		if !ok {
			a.Title.Set(l, domain.UntitledTitle(l))
			continue
		}
		a.Available.Set(l, true)
		a.Title.Set(l, title)
		a.Excerpt.Set(l, f.excerpt[l])
		a.Sources.Set(l, f.body[l])
		a.Tags.Set(l, f.tags[l])
	}
	return a
}

func corpus() []*domain.MultiLocaleArticle {
	fixtures := []fixture{
		{
			id: "rice", date: "2024-01-10",
			titles: localeText{domain.LocaleEN: "Cooking rice", domain.LocaleJA: "ご飯の炊き方"},
			body:   localeText{domain.LocaleEN: "Rinse the grains and soak them.", domain.LocaleJA: "お米を研いで浸します。"},
			tags:   map[domain.Locale][]string{domain.LocaleEN: {"food"}, domain.LocaleJA: {"料理"}},
		},
		{
			id: "k8s", date: "2024-02-01",
			titles: localeText{domain.LocaleEN: "Kubernetes in practice"},
			body:   localeText{domain.LocaleEN: "Pods, deployments and services."},
			tags:   map[domain.Locale][]string{domain.LocaleEN: {"ops"}},
		},
		{
			id: "grammar", date: "2024-02-01",
			titles:  localeText{domain.LocaleEN: "Particles wa and ga", domain.LocaleZhTW: "助詞"},
			excerpt: localeText{domain.LocaleEN: "Topic versus subject."},
			body:    localeText{domain.LocaleEN: "The topic particle frames the sentence."},
			tags:    map[domain.Locale][]string{domain.LocaleEN: {"grammar"}, domain.LocaleZhTW: {"文法"}},
		},
		{
			id: "travel", date: "2023-12-24",
			titles: localeText{domain.LocaleJA: "京都の旅"},
			body:   localeText{domain.LocaleJA: "寺と庭を巡ります。"},
			tags:   map[domain.Locale][]string{domain.LocaleJA: {"旅行"}},
		},
		{
			id: "tea", date: "2024-03-15",
			titles: localeText{domain.LocaleEN: "A bowl of tea", domain.LocaleZhCN: "一碗茶"},
			body:   localeText{domain.LocaleEN: "Whisk the matcha until foamy."},
			tags:   map[domain.Locale][]string{domain.LocaleEN: {"food", "culture"}},
		},
	}

	out := make([]*domain.MultiLocaleArticle, len(fixtures))
	for i, f := range fixtures {
		out[i] = f.build()
	}
	return out
}

func ids(results []domain.SearchResult) []domain.ArticleID {
	out := make([]domain.ArticleID, len(results))
	for i, r := range results {
		out[i] = r.ArticleID
	}
	return out
}
