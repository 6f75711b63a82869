package handler

// --- Form payloads ---

// credentialsForm is posted by both the login and the register views.
// Passwords are capped at bcrypt's 72-byte input limit.
type credentialsForm struct {
	Username string `form:"username" validate:"required,max=64"`
	Password string `form:"password" validate:"required,maxbytes=72"`
}

type newPostForm struct {
	Title   string `form:"title"   validate:"required,max=200"`
	Content string `form:"content" validate:"required"`
}
