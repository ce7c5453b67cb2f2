package dto

import (
	"time"

	"github.com/reimburse-desk/backend/internal/domain/entity"
)

// NotificationResponse represents an in-app notification.
type NotificationResponse struct {
	ID        string    `json:"id"`
	ReportID  *string   `json:"report_id,omitempty"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse represents a page of notifications.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Pagination    PaginationResponse     `json:"pagination"`
}

// ToNotificationListResponse converts a listing result.
func ToNotificationListResponse(result *entity.NotificationListResult) NotificationListResponse {
	notifications := make([]NotificationResponse, len(result.Notifications))
	for i, n := range result.Notifications {
		notifications[i] = NotificationResponse{
			ID:        n.ID.String(),
			ReportID:  optionalID(n.ReportID),
			Subject:   n.Subject,
			Status:    n.Status,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return NotificationListResponse{
		Notifications: notifications,
		Pagination: PaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}
