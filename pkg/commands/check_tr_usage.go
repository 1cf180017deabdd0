// Package commands holds developer tooling that inspects the source tree.
package commands

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type TrUsage struct {
	Key  string
	File string
	Line int
}

type MissingKey struct {
	Locale string
	TrUsage
}

var skippedDirs = map[string]bool{
	".git":         true,
	"vendor":       true,
	"node_modules": true,
	"_examples":    true,
}

// CheckTrUsage reports every literal translation key used under root that
// one of languages does not define in bundle.
func CheckTrUsage(logger *logrus.Logger, bundle *i18n.Bundle, root string, languages []string) ([]MissingKey, error) {
	if len(languages) == 0 {
		languages = []string{"en", "zh"}
	}
	usages, err := CollectTrUsages(root)
	if err != nil {
		return nil, err
	}
	if len(usages) == 0 {
		return nil, errors.New("no translation usages found")
	}

	messages := bundle.Messages()
	tags := make(map[string]language.Tag, len(languages))
	for _, code := range languages {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid language %q", code)
		}
		if messages[tag] == nil {
			return nil, errors.Errorf("language %q (%s) not found in bundle", code, tag)
		}
		tags[code] = tag
	}

	var missing []MissingKey
	seen := make(map[string]bool)
	for _, u := range usages {
		if u.Key == "" || seen[u.Key] {
			continue
		}
		seen[u.Key] = true
		for _, code := range languages {
			if messages[tags[code]][u.Key] == nil {
				missing = append(missing, MissingKey{Locale: code, TrUsage: u})
			}
		}
	}

	for _, m := range missing {
		logger.WithFields(logrus.Fields{
			"locale": m.Locale,
			"key":    m.Key,
			"source": m.File + ":" + strconv.Itoa(m.Line),
		}).Error("translation key missing")
	}
	if len(missing) == 0 {
		logger.WithFields(logrus.Fields{
			"locales":     strings.Join(languages, ", "),
			"unique_keys": len(seen),
		}).Info("all translation keys are defined")
	}
	return missing, nil
}

// CollectTrUsages walks root for literal keys passed to intl.T and
// intl.MustT or set as MessageID in a composite literal.
func CollectTrUsages(root string) ([]TrUsage, error) {
	var usages []TrUsage
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && skippedDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		found, err := trUsagesInFile(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		usages = append(usages, found...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(usages, func(i, j int) bool {
		if usages[i].File != usages[j].File {
			return usages[i].File < usages[j].File
		}
		return usages[i].Line < usages[j].Line
	})
	return usages, nil
}

func trUsagesInFile(absPath, relPath string) ([]TrUsage, error) {
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, absPath, src, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", relPath)
	}

	var usages []TrUsage
	add := func(expr ast.Expr) {
		if key, ok := stringLiteral(expr); ok {
			usages = append(usages, TrUsage{Key: key, File: relPath, Line: fset.Position(expr.Pos()).Line})
		}
	}
	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.CallExpr:
			sel, ok := node.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			pkg, ok := sel.X.(*ast.Ident)
			if !ok || pkg.Name != "intl" {
				return true
			}
			if (sel.Sel.Name == "T" || sel.Sel.Name == "MustT") && len(node.Args) >= 2 {
				add(node.Args[1])
			}
		case *ast.CompositeLit:
			for _, elt := range node.Elts {
				kv, ok := elt.(*ast.KeyValueExpr)
				if !ok {
					continue
				}
				if ident, ok := kv.Key.(*ast.Ident); ok && ident.Name == "MessageID" {
					add(kv.Value)
				}
			}
		}
		return true
	})
	return usages, nil
}

func stringLiteral(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	unquoted, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return unquoted, true
}
