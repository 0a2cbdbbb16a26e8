package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	accountservice "postboard/internal/account/service"
	authservice "postboard/internal/auth/service"
	"postboard/internal/auth/session"
	"postboard/internal/common/constants"
	commonerrors "postboard/internal/common/errors"
	commonhttp "postboard/internal/common/http"
	"postboard/internal/common/logger"
	"postboard/internal/news"
	postservice "postboard/internal/post/service"
)

type Handler struct {
	posts          *postservice.Service
	auth           *authservice.AuthService
	account        *accountservice.Service
	news           *news.Client
	sessions       *session.Manager
	errorHandler   *commonhttp.ErrorHandler
	log            *logger.Logger
	requestTimeout time.Duration
	picturesDir    string
}

func NewHandler(
	posts *postservice.Service,
	auth *authservice.AuthService,
	account *accountservice.Service,
	newsClient *news.Client,
	sessions *session.Manager,
	log *logger.Logger,
	requestTimeout time.Duration,
	picturesDir string,
) http.Handler {
	h := &Handler{
		posts:          posts,
		auth:           auth,
		account:        account,
		news:           newsClient,
		sessions:       sessions,
		errorHandler:   commonhttp.NewErrorHandler(log),
		log:            log,
		requestTimeout: requestTimeout,
		picturesDir:    picturesDir,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/", sessions.Attach(http.HandlerFunc(h.feed)))
	mux.Handle("/register", sessions.RedirectIfAuthenticated(http.HandlerFunc(h.register)))
	mux.Handle("/login", sessions.RedirectIfAuthenticated(http.HandlerFunc(h.login)))
	mux.HandleFunc("/logout", h.logout)
	mux.Handle("/account", sessions.RequireAuth(http.HandlerFunc(h.accountPage)))
	mux.Handle("/add_post", sessions.RequireAuth(http.HandlerFunc(h.addPost)))
	mux.Handle("/news", sessions.Attach(http.HandlerFunc(h.newsPage)))
	mux.Handle("/static/profile_pics/",
		http.StripPrefix("/static/profile_pics/", http.FileServer(http.Dir(picturesDir))))
	return mux
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Image    string `json:"image"`
}

type postView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type pagePayload struct {
	Page  string `json:"page"`
	User  any    `json:"user,omitempty"`
	Flash any    `json:"flash,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func (h *Handler) currentUserView(ctx context.Context) any {
	user, ok := session.CurrentUser(ctx)
	if !ok {
		return nil
	}
	return userView{
		ID:       string(user.ID),
		Username: user.Username,
		Email:    user.Email,
		Image:    user.Image,
	}
}

func (h *Handler) flashView(w http.ResponseWriter, r *http.Request) any {
	flash, ok := PopFlash(w, r)
	if !ok {
		return nil
	}
	return flash
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	posts, err := h.posts.List(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, postView{
			ID:          string(p.ID),
			Title:       p.Title,
			Author:      p.Author,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
		})
	}

	commonhttp.WriteJSON(w, http.StatusOK, pagePayload{
		Page:  "feed",
		User:  h.currentUserView(r.Context()),
		Flash: h.flashView(w, r),
		Data:  map[string]any{"posts": views},
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		commonhttp.WriteJSON(w, http.StatusOK, pagePayload{
			Page:  "register",
			Flash: h.flashView(w, r),
		})
	case http.MethodPost:
		h.handleRegister(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.Warnf("register failed: invalid form: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid form")
		return
	}

	form := RegisterForm{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	if details := validateForm(form); details != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest,
			commonerrors.ErrValidationFailed.Code(), commonerrors.ErrValidationFailed.Message(),
			details, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	_, err := h.auth.Register(ctx, authservice.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		// Duplicate email lands on the login page with a warning
		// rather than an error response.
		if errors.Is(err, commonerrors.ErrEmailAlreadyExists) {
			SetFlash(w, r, "Email already registered, please log in", "warning")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	SetFlash(w, r, "Account created, you can now log in", "success")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		commonhttp.WriteJSON(w, http.StatusOK, pagePayload{
			Page:  "login",
			Flash: h.flashView(w, r),
		})
	case http.MethodPost:
		h.handleLogin(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.Warnf("login failed: invalid form: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid form")
		return
	}

	form := LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if details := validateForm(form); details != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest,
			commonerrors.ErrValidationFailed.Code(), commonerrors.ErrValidationFailed.Message(),
			details, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.auth.Login(ctx, authservice.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	session.SetCookie(w, r, result.Token, result.ExpiresAt)
	SetFlash(w, r, "Logged in", "success")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	claims, err := h.sessions.Claims(cookie.Value)
	if err != nil {
		session.ClearCookie(w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if err := h.auth.Logout(ctx, claims); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	session.ClearCookie(w, r)
	SetFlash(w, r, "Logged out", "success")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) accountPage(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		commonhttp.WriteJSON(w, http.StatusOK, pagePayload{
			Page:  "account",
			User:  h.currentUserView(r.Context()),
			Flash: h.flashView(w, r),
		})
	case http.MethodPost:
		h.handleAccountUpdate(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleAccountUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := session.CurrentUser(r.Context())
	if !ok {
		commonhttp.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(int64(constants.MaxPictureSizeBytes)); err != nil {
		h.log.Warnf("account update failed: invalid multipart form: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid form")
		return
	}

	form := AccountForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
	}
	if details := validateForm(form); details != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest,
			commonerrors.ErrValidationFailed.Code(), commonerrors.ErrValidationFailed.Message(),
			details, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	input := accountservice.UpdateInput{
		Username: form.Username,
		Email:    form.Email,
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			h.log.Warnf("account update failed: picture read error: %v", readErr)
			commonhttp.WriteError(w, http.StatusBadRequest, "failed to read picture")
			return
		}
		input.PictureData = data
		input.PictureFilename = header.Filename
	} else if !errors.Is(err, http.ErrMissingFile) {
		h.log.Warnf("account update failed: picture form error: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid picture upload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if _, err := h.account.Update(ctx, user, input); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	SetFlash(w, r, "Account updated", "success")
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (h *Handler) addPost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		commonhttp.WriteJSON(w, http.StatusOK, pagePayload{
			Page:  "add_post",
			User:  h.currentUserView(r.Context()),
			Flash: h.flashView(w, r),
		})
	case http.MethodPost:
		h.handleAddPost(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleAddPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.Warnf("add post failed: invalid form: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid form")
		return
	}

	// Author comes from the form as typed, not from the session.
	form := PostForm{
		Title:       r.PostFormValue("title"),
		Author:      r.PostFormValue("author"),
		Description: r.PostFormValue("description"),
	}
	if details := validateForm(form); details != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest,
			commonerrors.ErrValidationFailed.Code(), commonerrors.ErrValidationFailed.Message(),
			details, commonhttp.TraceIDFromContext(r.Context()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	if _, err := h.posts.Create(ctx, postservice.CreateInput{
		Title:       form.Title,
		Author:      form.Author,
		Description: form.Description,
	}); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	SetFlash(w, r, "Post published", "success")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) newsPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	payload := pagePayload{
		Page:  "news",
		User:  h.currentUserView(r.Context()),
		Flash: h.flashView(w, r),
	}

	headlines, err := h.news.TopHeadlines(ctx)
	if err != nil {
		// The page still renders; the upstream outage is a notice, not
		// an error response.
		payload.Data = map[string]any{
			"articles": []news.Article{},
			"notice":   "news is temporarily unavailable",
		}
		commonhttp.WriteJSON(w, http.StatusOK, payload)
		return
	}

	payload.Data = map[string]any{"articles": headlines.Articles}
	commonhttp.WriteJSON(w, http.StatusOK, payload)
}
