package rest

import (
	"context"
	"net/http"

	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/service/account"
	"github.com/sandevgo/sejarahbot/pkg/validate"
)

var (
	errVerificationCode = account.ErrInvalidCode
	errAlreadyVerified  = account.ErrVerified
)

// Accounts is the account directory as seen by the HTTP layer.
type Accounts interface {
	Register(ctx context.Context, name, email, password string) (core.Account, error)
	Verify(ctx context.Context, email, code string) (string, core.Account, error)
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (string, core.Account, error)
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type resendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type accountView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

type sessionResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token,omitempty"`
	Account accountView `json:"account"`
}

func viewOf(a core.Account) accountView {
	return accountView{ID: a.ID, Name: a.Name, Email: a.Email, Verified: a.Verified}
}

type AuthHandler struct {
	accounts Accounts
	validate *validate.Validator
}

func NewAuthHandler(accounts Accounts, v *validate.Validator) *AuthHandler {
	return &AuthHandler{accounts: accounts, validate: v}
}

func (h *AuthHandler) bind(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := decodeJSON(w, r, req); err != nil {
		writeError(w, r, err)
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, err)
		return false
	}
	return true
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.bind(w, r, &req) {
		return
	}

	a, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		Message: "Registrasi berhasil! Kode verifikasi telah dikirim ke email Anda.",
		Account: viewOf(a),
	})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !h.bind(w, r, &req) {
		return
	}

	token, a, err := h.accounts.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Message: "Email berhasil diverifikasi!",
		Token:   token,
		Account: viewOf(a),
	})
}

func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if !h.bind(w, r, &req) {
		return
	}

	if err := h.accounts.ResendVerification(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Kode verifikasi baru telah dikirim ke email Anda.",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.bind(w, r, &req) {
		return
	}

	token, a, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Message: "Login berhasil",
		Token:   token,
		Account: viewOf(a),
	})
}
