package handlers

// AppHandlers bundles every handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Verification *VerificationHandler
	Match        *MatchHandler
	Chat         *ChatHandler
	Moderation   *ModerationHandler
	Admin        *AdminHandler
	File         *FileHandler
}
