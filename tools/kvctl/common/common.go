// Copyright (c) 2025 statekv authors
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package common provides multi-language support for the command line.
package common

import (
	"os"
	"strings"
)

const (
	// English is the default language
	English = "english"
	// Chinese is the simplified chinese language
	Chinese = "chinese"
)

var _lang = English

func init() {
	if lang := os.Getenv("LANG"); strings.HasPrefix(strings.ToLower(lang), "zh") {
		_lang = Chinese
	}
}

// TranslateInLang returns the translation of the environment language
func TranslateInLang(translations map[string]string) string {
	if tsl, ok := translations[_lang]; ok {
		return tsl
	}
	return translations[English]
}
