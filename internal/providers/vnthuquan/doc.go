// Package vnthuquan implements providers.Scraper for vnthuquan.net style
// novel sites: a listing page naming the author, title and every chapter,
// and one full-text page per chapter.
package vnthuquan
