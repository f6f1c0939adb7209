package services

import (
	"time"

	contentmem "github.com/custodia-labs/parallax/internal/adapters/driven/content/memory"
	"github.com/custodia-labs/parallax/internal/core/domain"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

const riceJA = `---
title: 日本の米
excerpt: 米の話
---
<!-- s1 -->
# 日本の米

<!-- s2 -->
米は主食です。

<!-- s3 -->
![田んぼ](paddy.jpg)
`

const riceEN = `---
title: Rice in Japan
tags: [food]
---
<!-- s1 -->
# Rice in Japan

<!-- s2 -->
Rice is the staple food.

<!-- s9 -->
An extra English-only note.
`

const k8sEN = `# Kubernetes Basics

Pods, deployments and services explained for beginners.
`

const grammarJA = `---
title: 助詞「は」
date: 2024-05-06
---
<!-- s1 -->
## 主題

<!-- s2 -->
- 「は」は主題を示す
`

const grammarEN = `---
title: The particle wa
---
<!-- s1 -->
## Topic

<!-- s2 -->
- wa marks the topic
`

func localeTags(pairs map[domain.Locale][]string) domain.Localized[[]string] {
	var out domain.Localized[[]string]
	for l, tags := range pairs {
		out.Set(l, tags)
	}
	return out
}

// newCorpus returns a small content source:
//
//	rice     ja+en, meta with author "kenji", featured, captions for paddy.jpg
//	k8s      en only, no meta, no front matter
//	grammar  ja+en, no meta, date in ja front matter
//	broken   ja with unterminated front matter, en fine, malformed meta
func newCorpus() *contentmem.Source {
	src := contentmem.NewSource()

	var caption domain.Localized[string]
	caption.Set(domain.LocaleJA, "秋の田んぼ")
	caption.Set(domain.LocaleEN, "Paddy in autumn")

	src.PutAuthor(domain.Author{
		ID:   "kenji",
		Name: domain.Localized[string]{"健二", "Kenji", "", ""},
	})

	src.Put("rice", contentmem.Article{
		Locales: map[domain.Locale]string{
			domain.LocaleJA: riceJA,
			domain.LocaleEN: riceEN,
		},
		Meta: &domain.ArticleMeta{
			PublishDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
			HeroImage:   "/images/blog/rice/hero.jpg",
			Tags: localeTags(map[domain.Locale][]string{
				domain.LocaleJA: {"食べ物", "文化"},
				domain.LocaleEN: {"food", "culture"},
			}),
			Featured:   true,
			AuthorID:   "kenji",
			RelatedIDs: []domain.ArticleID{"grammar"},
		},
		Captions: map[string]domain.Localized[string]{"paddy.jpg": caption},
	})

	src.Put("k8s", contentmem.Article{
		Locales: map[domain.Locale]string{domain.LocaleEN: k8sEN},
	})

	src.Put("grammar", contentmem.Article{
		Locales: map[domain.Locale]string{
			domain.LocaleJA: grammarJA,
			domain.LocaleEN: grammarEN,
		},
		Meta: &domain.ArticleMeta{
			Tags: localeTags(map[domain.Locale][]string{
				domain.LocaleJA: {"文法"},
				domain.LocaleEN: {"grammar", "culture"},
			}),
		},
	})

	src.Put("broken", contentmem.Article{
		Locales: map[domain.Locale]string{
			domain.LocaleJA: "---\ntitle: never closed\n\nbody",
			domain.LocaleEN: "# Still fine\n\ntext",
		},
		MetaErr: errMalformedMeta,
	})

	return src
}

type fixtureError string

func (e fixtureError) Error() string { return string(e) }

const errMalformedMeta = fixtureError("meta.json: invalid character '}'")
