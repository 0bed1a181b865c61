package request

type NotificationListRequest struct {
	PaginatedRequest
	UnreadOnly bool
}
