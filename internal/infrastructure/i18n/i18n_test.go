package i18n

import (
	"sync"
	"testing"
	"testing/fstest"
)

// testLocales cria locales em memória para testes
func testLocales() fstest.MapFS {
	return fstest.MapFS{
		"en.json": {Data: []byte(`{
  "error.permission_already_exists": "A permission named {{.Name}} already exists",
  "error.permission_not_found": "Permission not found",
  "error.forbidden.title": "Forbidden"
}`)},
		"pt-BR.json": {Data: []byte(`{
  "error.permission_already_exists": "Já existe uma permissão chamada {{.Name}}",
  "error.permission_not_found": "Permissão não encontrada"
}`)},
		"es.json": {Data: []byte(`{
  "error.permission_already_exists": "Ya existe un permiso llamado {{.Name}}",
  "error.permission_not_found": "Permiso no encontrado"
}`)},
	}
}

func TestNewService(t *testing.T) {
	t.Run("carrega traduções com sucesso", func(t *testing.T) {
		service, err := NewService(testLocales(), "en")
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if service.GetDefaultLanguage() != "en" {
			t.Errorf("esperava idioma padrão 'en', obteve '%s'", service.GetDefaultLanguage())
		}

		langs := service.GetSupportedLanguages()
		if len(langs) != 3 || langs[0] != "en" {
			t.Errorf("esperava 3 idiomas com 'en' primeiro, obteve %v", langs)
		}
	})

	t.Run("erro quando não há arquivos", func(t *testing.T) {
		_, err := NewService(fstest.MapFS{}, "en")
		if err == nil {
			t.Error("esperava erro, obteve sucesso")
		}
	})

	t.Run("erro quando idioma padrão não existe", func(t *testing.T) {
		_, err := NewService(testLocales(), "fr")
		if err == nil {
			t.Error("esperava erro para idioma padrão inexistente, obteve sucesso")
		}
	})

	t.Run("erro com JSON inválido", func(t *testing.T) {
		fsys := testLocales()
		fsys["de.json"] = &fstest.MapFile{Data: []byte(`{`)}
		_, err := NewService(fsys, "en")
		if err == nil {
			t.Error("esperava erro de parse, obteve sucesso")
		}
	})
}

func TestNewEmbeddedService(t *testing.T) {
	service, err := NewEmbeddedService("en")
	if err != nil {
		t.Fatalf("esperava sucesso, obteve erro: %v", err)
	}

	for _, lang := range []string{"en", "pt-BR", "es"} {
		if !service.IsLanguageSupported(lang) {
			t.Errorf("esperava suporte a '%s'", lang)
		}
	}

	// Todas as chaves do inglês devem existir nos demais idiomas
	for key := range service.translations["en"] {
		for _, lang := range []string{"pt-BR", "es"} {
			if service.getTranslation(lang, key) == "" {
				t.Errorf("chave '%s' ausente em '%s'", key, lang)
			}
		}
	}
}

func TestService_T(t *testing.T) {
	service, err := NewService(testLocales(), "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	tests := []struct {
		name     string
		lang     string
		key      string
		params   []map[string]interface{}
		expected string
	}{
		{"mensagem simples em inglês", "en", "error.permission_not_found", nil, "Permission not found"},
		{"mensagem simples em português", "pt-BR", "error.permission_not_found", nil, "Permissão não encontrada"},
		{
			"mensagem com parâmetros",
			"en", "error.permission_already_exists",
			[]map[string]interface{}{{"Name": "customer_view"}},
			"A permission named customer_view already exists",
		},
		{
			"mensagem com parâmetros em espanhol",
			"es", "error.permission_already_exists",
			[]map[string]interface{}{{"Name": "bank_create"}},
			"Ya existe un permiso llamado bank_create",
		},
		{"fallback para idioma padrão", "pt-BR", "error.forbidden.title", nil, "Forbidden"},
		{"fallback para idioma não suportado", "fr", "error.permission_not_found", nil, "Permission not found"},
		{"retorna chave quando tradução não existe", "en", "chave.inexistente", nil, "chave.inexistente"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.T(tt.lang, tt.key, tt.params...)
			if result != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, result)
			}
		})
	}
}

func TestService_Match(t *testing.T) {
	service, err := NewService(testLocales(), "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	tests := []struct {
		name       string
		acceptLang string
		expected   string
	}{
		{"idioma único suportado", "pt-BR", "pt-BR"},
		{"primeiro é suportado", "es,pt-BR;q=0.9,en;q=0.8", "es"},
		{"segundo é suportado", "fr,pt-BR;q=0.9", "pt-BR"},
		{"respeita pesos q", "en;q=0.5,es;q=0.9", "es"},
		{"nenhum idioma suportado", "fr,de;q=0.9", ""},
		{"header vazio", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := service.Match(tt.acceptLang); result != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, result)
			}
		})
	}
}

func TestService_IsLanguageSupported(t *testing.T) {
	service, err := NewService(testLocales(), "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	tests := []struct {
		lang     string
		expected bool
	}{
		{"en", true},
		{"pt-BR", true},
		{"es", true},
		{"fr", false},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			result := service.IsLanguageSupported(tt.lang)
			if result != tt.expected {
				t.Errorf("para idioma '%s', esperava %v, obteve %v", tt.lang, tt.expected, result)
			}
		})
	}
}

func TestService_ThreadSafety(t *testing.T) {
	service, err := NewService(testLocales(), "en")
	if err != nil {
		t.Fatalf("falha ao inicializar serviço: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(3)

		go func() {
			defer wg.Done()
			_ = service.T("en", "error.permission_already_exists", map[string]interface{}{"Name": "x"})
		}()

		go func() {
			defer wg.Done()
			_ = service.Match("pt-BR,en;q=0.8")
		}()

		go func() {
			defer wg.Done()
			_ = service.IsLanguageSupported("en")
		}()
	}

	wg.Wait()
}
