package errors

var (
	// Domain errors shared by the social and chat use cases
	ErrSelfFriendRequest       = InvalidArg("cannot send a friend request to yourself")
	ErrSelfConversation        = InvalidArg("a conversation needs two different participants")
	ErrFriendRequestNotFound   = NotFound("friend request not found")
	ErrConversationNotFound    = NotFound("conversation not found")
	ErrUserNotFound            = NotFound("user not found")
	ErrNotRequestRecipient     = Forbidden("only the recipient can accept a friend request")
	ErrNotParticipant          = InvalidArg("sender and recipient must be the conversation participants")
	ErrEmptyMessage            = InvalidArg("message body cannot be empty")
	ErrFileMessageNotSupported = Unimplemented("file messages are not supported")
	ErrIdentityMismatch        = Forbidden("event identity does not match the connected user")
	ErrAnonymousSession        = Unauthorized("connect with a user identity before sending events")
)

func ErrPersistence(cause error) error {
	return Wrap(CodeInternal, "persistence error", cause)
}
