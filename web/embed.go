package web

import "embed"

// StaticFS embeds the single-page client (html/js/css).
//
//go:embed static/*
var StaticFS embed.FS
