package i18n

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewTranslations(t *testing.T) {
	t.Run("Should load the embedded locales without a directory", func(t *testing.T) {
		// act
		trans, err := NewTranslations("en", "")

		// assert
		if err != nil {
			t.Fatalf("NewTranslations() no debería retornar error, obtuvo: %v", err)
		}
		if got := trans.GetMessage("staged.success", 0, nil); got != "Staged diff copied to clipboard." {
			t.Errorf("GetMessage() = %v", got)
		}
	})

	t.Run("Should fail with empty language", func(t *testing.T) {
		// act
		trans, err := NewTranslations("", "")

		// assert
		if err == nil {
			t.Error("NewTranslations() debería retornar error con idioma vacío")
		}
		if trans != nil {
			t.Error("NewTranslations() debería retornar nil cuando falla")
		}
	})

	t.Run("Should let files in the directory override embedded messages", func(t *testing.T) {
		// arrange
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
[staged]
success = "¡Copiado!"
`)

		// act
		trans, err := NewTranslations("es", tmpDir)

		// assert
		if err != nil {
			t.Fatalf("NewTranslations() no debería retornar error, obtuvo: %v", err)
		}
		if got := trans.GetMessage("staged.success", 0, nil); got != "¡Copiado!" {
			t.Errorf("GetMessage() = %v, quiere %v", got, "¡Copiado!")
		}
		if got := trans.GetMessage("working.success", 0, nil); got != "Diff del directorio de trabajo copiado al portapapeles." {
			t.Errorf("GetMessage() = %v", got)
		}
	})

	t.Run("Should fail with an invalid TOML file", func(t *testing.T) {
		// arrange
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "active.es.toml", `
[InvalidSection
this is not valid TOML`)

		// act
		trans, err := NewTranslations("es", tmpDir)

		// assert
		if err == nil || !strings.HasPrefix(err.Error(), "error loading locale file") {
			t.Errorf("Error debería comenzar con 'error loading locale file', obtenido: %v", err)
		}
		if trans != nil {
			t.Error("NewTranslations() debería retornar nil cuando falla")
		}
	})
}

func TestSetLanguage(t *testing.T) {
	t.Run("Should change to a valid language", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		if err != nil {
			t.Fatal("Error en la configuración de la prueba:", err)
		}

		if err := trans.SetLanguage("es"); err != nil {
			t.Fatalf("SetLanguage() no debería retornar error, obtuvo: %v", err)
		}

		if trans.Language() != "es" {
			t.Errorf("Language() = %v, quiere es", trans.Language())
		}
		if got := trans.GetMessage("menu.exit", 0, nil); got != "Salir" {
			t.Errorf("GetMessage() = %v, quiere Salir", got)
		}
	})

	t.Run("Should fail with unsupported language", func(t *testing.T) {
		trans, err := NewTranslations("es", "")
		if err != nil {
			t.Fatal("Error en la configuración de la prueba:", err)
		}

		if err := trans.SetLanguage("fr"); err == nil {
			t.Error("SetLanguage() debería retornar error con idioma no soportado")
		}
		if trans.Language() != "es" {
			t.Errorf("Language() = %v, quiere es", trans.Language())
		}
	})
}

func TestForLanguage(t *testing.T) {
	trans, err := NewTranslations("en", "")
	if err != nil {
		t.Fatal("Error en la configuración de la prueba:", err)
	}

	t.Run("Should localize without touching the original", func(t *testing.T) {
		es := trans.ForLanguage("es")

		if got := es.GetMessage("menu.exit", 0, nil); got != "Salir" {
			t.Errorf("GetMessage() = %v, quiere Salir", got)
		}
		if got := trans.GetMessage("menu.exit", 0, nil); got != "Exit" {
			t.Errorf("GetMessage() = %v, quiere Exit", got)
		}
	})

	t.Run("Should fall back to English", func(t *testing.T) {
		de := trans.ForLanguage("de")

		if de.Language() != "en" {
			t.Errorf("Language() = %v, quiere en", de.Language())
		}
	})
}

func TestGetMessage(t *testing.T) {
	trans, err := NewTranslations("en", "")
	if err != nil {
		t.Fatal("Error en la configuración de la prueba:", err)
	}

	tests := []struct {
		name     string
		id       string
		count    int
		data     map[string]interface{}
		expected string
	}{
		{
			name:     "singular",
			id:       "commits.success",
			count:    1,
			data:     map[string]interface{}{"Count": 1},
			expected: "Diff of 1 commit copied to clipboard.",
		},
		{
			name:     "plural",
			id:       "commits.success",
			count:    3,
			data:     map[string]interface{}{"Count": 3},
			expected: "Combined diffs of 3 commits copied to clipboard.",
		},
		{
			name:     "template",
			id:       "commit.success",
			data:     map[string]interface{}{"Hash": "abc123"},
			expected: "Diff of commit abc123 copied to clipboard.",
		},
		{
			name:     "missing",
			id:       "NonExistent",
			expected: "Translation missing: NonExistent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := trans.GetMessage(tt.id, tt.count, tt.data)

			if result != tt.expected {
				t.Errorf("GetMessage() = %v, quiere %v", result, tt.expected)
			}
		})
	}
}

func createTestFile(t *testing.T, dir, filename, content string) {
	err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644)
	if err != nil {
		t.Fatal("No se pudo crear el archivo de prueba:", err)
	}
}
