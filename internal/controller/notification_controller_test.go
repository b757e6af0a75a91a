package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agriintel/internal/model"
	"agriintel/internal/notify"

	"github.com/gin-gonic/gin"
)

func setupNotificationRouter(center *notify.Center) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	c := NewNotificationController(center, testLogger())
	v1 := r.Group("/v1")
	{
		v1.GET("/notifications", c.List)
		v1.POST("/notifications/:id/read", c.MarkRead)
	}
	return r
}

func seededCenter() *notify.Center {
	center := notify.NewCenter()
	center.Seed([]model.Notification{
		{ID: 1, Type: model.NotifyAlert, Message: "Pest risk detected", Read: false},
		{ID: 2, Type: model.NotifyInfo, Message: "Weekly report available", Read: true},
	})
	return center
}

func TestListNotifications(t *testing.T) {
	router := setupNotificationRouter(seededCenter())

	req, _ := http.NewRequest("GET", "/v1/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var response struct {
		Notifications []model.Notification `json:"notifications"`
		Unread        int                  `json:"unread"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Notifications) != 2 {
		t.Errorf("Expected 2 notifications, got %d", len(response.Notifications))
	}
	if response.Unread != 1 {
		t.Errorf("Expected 1 unread, got %d", response.Unread)
	}
}

func TestMarkRead(t *testing.T) {
	center := seededCenter()
	router := setupNotificationRouter(center)

	req, _ := http.NewRequest("POST", "/v1/notifications/1/read", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}
	if got := center.UnreadCount(); got != 0 {
		t.Errorf("Expected 0 unread after acknowledge, got %d", got)
	}
}

func TestMarkRead_UnknownID(t *testing.T) {
	router := setupNotificationRouter(seededCenter())

	req, _ := http.NewRequest("POST", "/v1/notifications/99/read", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestMarkRead_InvalidID(t *testing.T) {
	router := setupNotificationRouter(seededCenter())

	req, _ := http.NewRequest("POST", "/v1/notifications/abc/read", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
	}
}
