package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yourrobotics/backend/middleware"
	"github.com/yourrobotics/backend/models"
)

func settingsRequest(t *testing.T, method string, user *models.User, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, "/api/settings", &buf)
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func TestSettingsLazyCreate(t *testing.T) {
	db := newFakeStore()
	h := &SettingsHandler{DB: db}
	user := db.testUser("Root", "root@x.com", models.RoleAdmin)

	rec := httptest.NewRecorder()
	h.Get(rec, settingsRequest(t, http.MethodGet, user, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var settings models.UserSettings
	if err := json.NewDecoder(rec.Body).Decode(&settings); err != nil {
		t.Fatal(err)
	}
	if settings.StoreName != "YourRobotics Store" {
		t.Errorf("storeName = %q", settings.StoreName)
	}
	if settings.StoreEmail != user.Email {
		t.Errorf("storeEmail = %q, want %q", settings.StoreEmail, user.Email)
	}
	if settings.Theme != models.ThemeLight {
		t.Errorf("theme = %q, want light", settings.Theme)
	}
	if !settings.Notifications.NewOrders || !settings.Notifications.LowStock {
		t.Errorf("notifications should default on: %+v", settings.Notifications)
	}

	// A second read returns the same document, not another default copy.
	rec = httptest.NewRecorder()
	h.Get(rec, settingsRequest(t, http.MethodGet, user, nil))
	var again models.UserSettings
	json.NewDecoder(rec.Body).Decode(&again)
	if again.ID != settings.ID {
		t.Errorf("second read created a new document: %s vs %s", again.ID.Hex(), settings.ID.Hex())
	}
	if len(db.settings) != 1 {
		t.Errorf("settings documents = %d, want 1", len(db.settings))
	}
}

func TestUpdateSettings(t *testing.T) {
	db := newFakeStore()
	h := &SettingsHandler{DB: db}
	user := db.testUser("Root", "root@x.com", models.RoleAdmin)

	name := "RoboBazar"
	phone := "+8801000000000"
	rec := httptest.NewRecorder()
	h.Update(rec, settingsRequest(t, http.MethodPut, user, UpdateSettingsRequest{
		StoreName: &name, StorePhone: &phone,
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var settings models.UserSettings
	json.NewDecoder(rec.Body).Decode(&settings)
	if settings.StoreName != "RoboBazar" || settings.StorePhone != phone {
		t.Errorf("update not applied: %+v", settings)
	}
	if settings.StoreEmail != user.Email {
		t.Errorf("unset field changed: storeEmail = %q", settings.StoreEmail)
	}
}

func TestUpdateTheme(t *testing.T) {
	db := newFakeStore()
	h := &SettingsHandler{DB: db}
	user := db.testUser("Root", "root@x.com", models.RoleAdmin)

	rec := httptest.NewRecorder()
	h.UpdateTheme(rec, settingsRequest(t, http.MethodPut, user, UpdateThemeRequest{Theme: "neon"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid theme status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.UpdateTheme(rec, settingsRequest(t, http.MethodPut, user, UpdateThemeRequest{Theme: models.ThemeDark}))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["theme"] != models.ThemeDark {
		t.Errorf("theme = %q, want dark", resp["theme"])
	}
	stored, _ := db.SettingsByUser(nil, user.ID)
	if stored.Theme != models.ThemeDark {
		t.Errorf("stored theme = %q", stored.Theme)
	}
}
