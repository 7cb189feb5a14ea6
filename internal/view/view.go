package view

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/i18n"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	langResolver = func(_ *http.Request) string { return i18n.DetectLanguage("") }
)

// SetLangResolver lets the host app provide the language resolver (e.g.
// reading the prefs middleware context) without coupling view to it.
func SetLangResolver(f func(*http.Request) string) {
	if f != nil {
		langResolver = f
	}
}

// SetBaseDir overrides the template base directory (useful for tests).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
	tplCache.Lock()
	tplCache.m = map[string]*template.Template{}
	tplCache.Unlock()
}

func detectBase() {
	if baseDir != "" {
		return
	}
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the shared template func map.
func Funcs(r *http.Request) template.FuncMap {
	lang := langResolver(r)
	return template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
		"dir": func() string {
			if lang == "ar" {
				return "rtl"
			}
			return "ltr"
		},
		"year":  func() int { return time.Now().Year() },
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"asset": func(path string) string { return "/static/" + path },
		"deref": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
	}
}

// Render parses and executes a page template wrapped in layout.html with the
// header partial. Parsed templates are cached except when DEV=1.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(detectBase)
	if data == nil {
		data = map[string]any{}
	}
	if _, exists := data["Title"]; !exists {
		data["Title"] = ""
	}

	key := name
	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		t, ok := tplCache.m[key]
		tplCache.RUnlock()
		if ok && t != nil {
			return t.Funcs(Funcs(r)).Execute(w, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	if _, err := os.Stat(mainPath); err != nil {
		return err
	}
	files := []string{filepath.Join(baseDir, "layout.html"), mainPath}
	header := filepath.Join(baseDir, "partials", "header.html")
	if fi, err := os.Stat(header); err == nil && !fi.IsDir() {
		files = append(files, header)
	}
	t, err := template.New("layout.html").Funcs(Funcs(r)).ParseFiles(files...)
	if err != nil {
		return err
	}
	if !devMode {
		tplCache.Lock()
		tplCache.m[key] = t
		tplCache.Unlock()
	}
	return t.Funcs(Funcs(r)).Execute(w, data)
}
