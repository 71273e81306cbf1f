package auth

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

// TestGenerateJWT тестирует создание JWT токена
func TestGenerateJWT(t *testing.T) {
	user := &User{
		ID:           1,
		Username:     "testuser",
		PasswordHash: "hashedpassword",
		IsAdmin:      false,
		CreatedAt:    time.Now(),
		LastLogin:    time.Now(),
	}

	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("Ошибка генерации JWT: %v", err)
	}

	if token == "" {
		t.Fatal("Пустой токен")
	}

	// Проверяем, что токен содержит точки (разделители частей JWT)
	if strings.Count(token, ".") != 2 {
		t.Errorf("Неверный формат JWT токена: %s", token)
	}
}

// TestValidateJWT тестирует валидацию JWT токена
func TestValidateJWT(t *testing.T) {
	user := &User{
		ID:           42,
		Username:     "validuser",
		PasswordHash: "hashedpassword",
		IsAdmin:      true,
		CreatedAt:    time.Now(),
		LastLogin:    time.Now(),
	}

	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("Ошибка генерации JWT: %v", err)
	}

	playerID, isValid, isAdmin := ValidateJWT(token)

	if !isValid {
		t.Error("Валидный токен определен как недействительный")
	}

	if playerID != user.ID {
		t.Errorf("Неверный playerID: ожидался %d, получен %d", user.ID, playerID)
	}

	if isAdmin != user.IsAdmin {
		t.Errorf("Неверный флаг администратора: ожидался %v, получен %v", user.IsAdmin, isAdmin)
	}
}

// TestValidateInvalidJWT тестирует валидацию недействительного JWT
func TestValidateInvalidJWT(t *testing.T) {
	testCases := []string{
		"invalid.token.here",
		"",
		"not.a.jwt",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, invalidToken := range testCases {
		playerID, isValid, isAdmin := ValidateJWT(invalidToken)

		if isValid {
			t.Errorf("Недействительный токен '%s' прошел валидацию", invalidToken)
		}

		if playerID != 0 {
			t.Errorf("PlayerID должен быть 0 для недействительного токена, получен %d", playerID)
		}

		if isAdmin {
			t.Errorf("isAdmin должен быть false для недействительного токена")
		}
	}
}

// TestPasswordHashing тестирует bcrypt хеширование и проверку пароля
func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("Ошибка хеширования пароля: %v", err)
	}

	if hash == "secret123" {
		t.Error("Хеш совпадает с исходным паролем")
	}

	if !CheckPassword(hash, "secret123") {
		t.Error("Правильный пароль не прошел проверку")
	}

	if CheckPassword(hash, "wrongpassword") {
		t.Error("Неправильный пароль прошел проверку")
	}
}

// TestSetJWTSecret тестирует установку операторского секрета подписи
func TestSetJWTSecret(t *testing.T) {
	defer func(old []byte) { jwtSecret = old }(jwtSecret)

	user := &User{ID: 7, Username: "secretuser"}
	oldToken, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("Ошибка генерации JWT: %v", err)
	}

	if err := SetJWTSecret("не-base64!!!"); err == nil {
		t.Error("Секрет с невалидным base64 принят")
	}
	short := base64.StdEncoding.EncodeToString([]byte("short"))
	if err := SetJWTSecret(short); err == nil {
		t.Error("Секрет короче 32 байт принят")
	}

	secret := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	if err := SetJWTSecret(secret); err != nil {
		t.Fatalf("Валидный секрет отвергнут: %v", err)
	}

	// Старые токены перестают проходить проверку, новые — работают
	if _, valid, _ := ValidateJWT(oldToken); valid {
		t.Error("Токен на старом секрете прошел проверку после смены")
	}
	newToken, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("Ошибка генерации JWT: %v", err)
	}
	if id, valid, _ := ValidateJWT(newToken); !valid || id != 7 {
		t.Errorf("Токен на новом секрете: valid=%v id=%d", valid, id)
	}
}
