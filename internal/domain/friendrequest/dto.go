package friendrequest

// SendRequest for POST /friend-requests
type SendRequest struct {
	SenderID   int64 `json:"sender_id" validate:"required,id"`
	ReceiverID int64 `json:"receiver_id" validate:"required,id,nefield=SenderID"`
}
