package domain

const (
	RequesterIDCtxKey     = "mm-requesterId"
	RequesterNameCtxKey   = "mm-requesterName"
	RequesterAvatarCtxKey = "mm-requesterAvatar"
	RequesterJTICtxKey    = "mm-requesterJti"
)
