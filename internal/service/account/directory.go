package account

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser   = "user"
	codeDigits = 6
)

var (
	ErrInvalidCode = fmt.Errorf("verification code is wrong or expired: %w", core.ErrInvalidInput)
	ErrVerified    = fmt.Errorf("email already verified: %w", core.ErrConflict)
)

// Directory manages accounts: registration, email verification and login.
type Directory struct {
	repo      core.AccountRepository
	authority core.SessionAuthority
	notifier  core.Notifier
	codeTTL   time.Duration
	cost      int
	now       func() time.Time
	newCode   func() (string, error)
}

func NewDirectory(cfg *config.AuthConfig, repo core.AccountRepository, authority core.SessionAuthority, notifier core.Notifier) *Directory {
	return &Directory{
		repo:      repo,
		authority: authority,
		notifier:  notifier,
		codeTTL:   cfg.CodeTTL,
		cost:      bcrypt.DefaultCost,
		now:       func() time.Time { return time.Now().UTC() },
		newCode:   verificationCode,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (d *Directory) Register(ctx context.Context, name, email, password string) (core.Account, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return core.Account{}, fmt.Errorf("name, email and password are required: %w", core.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return core.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := d.newCode()
	if err != nil {
		return core.Account{}, err
	}

	now := d.now()
	account := core.Account{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            email,
		PasswordHash:     string(hash),
		Role:             RoleUser,
		VerificationCode: code,
		CodeExpiresAt:    now.Add(d.codeTTL),
		CreatedAt:        now,
	}

	if err := d.repo.CreateAccount(ctx, account); err != nil {
		return core.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	d.notify(ctx, account.Email, "📧 Kode Verifikasi Email - SejarahBot", verificationBody(account, d.codeTTL))
	return account, nil
}

// Verify checks the emailed code and, on success, returns a session token.
func (d *Directory) Verify(ctx context.Context, email, code string) (string, core.Account, error) {
	account, err := d.repo.GetAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", core.Account{}, err
	}
	if account.Verified {
		return "", core.Account{}, ErrVerified
	}

	if !d.codeMatches(account, strings.TrimSpace(code)) {
		return "", core.Account{}, ErrInvalidCode
	}

	account.Verified = true
	account.VerificationCode = ""
	account.CodeExpiresAt = time.Time{}
	if err := d.repo.UpdateAccount(ctx, *account); err != nil {
		return "", core.Account{}, fmt.Errorf("failed to mark account verified: %w", err)
	}

	d.notify(ctx, account.Email, "✅ Email Berhasil Diverifikasi - SejarahBot",
		fmt.Sprintf("Halo %s,\n\nEmail Anda telah berhasil diverifikasi. Akun Anda sekarang aktif.", account.Name))

	token, err := d.IssueSession(*account)
	if err != nil {
		return "", core.Account{}, err
	}
	return token, *account, nil
}

func (d *Directory) ResendVerification(ctx context.Context, email string) error {
	account, err := d.repo.GetAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if account.Verified {
		return ErrVerified
	}

	code, err := d.newCode()
	if err != nil {
		return err
	}
	account.VerificationCode = code
	account.CodeExpiresAt = d.now().Add(d.codeTTL)

	if err := d.repo.UpdateAccount(ctx, *account); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	d.notify(ctx, account.Email, "📧 Kode Verifikasi Baru - SejarahBot", verificationBody(*account, d.codeTTL))
	return nil
}

// Login checks the password before the verification state, so an
// unverified account is only revealed to its owner.
func (d *Directory) Login(ctx context.Context, email, password string) (string, core.Account, error) {
	account, err := d.repo.GetAccountByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, core.ErrNotFound) {
		return "", core.Account{}, fmt.Errorf("unknown email: %w", core.ErrAuth)
	}
	if err != nil {
		return "", core.Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", core.Account{}, fmt.Errorf("wrong password: %w", core.ErrAuth)
	}
	if !account.Verified {
		return "", core.Account{}, core.ErrUnverified
	}

	token, err := d.IssueSession(*account)
	if err != nil {
		return "", core.Account{}, err
	}
	return token, *account, nil
}

func (d *Directory) IssueSession(account core.Account) (string, error) {
	token, err := d.authority.IssueToken(account.Identity())
	if err != nil {
		return "", fmt.Errorf("failed to issue session: %w", err)
	}
	return token, nil
}

func (d *Directory) codeMatches(account *core.Account, code string) bool {
	if account.VerificationCode == "" || d.now().After(account.CodeExpiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(account.VerificationCode), []byte(code)) == 1
}

// notify is best effort; failures are logged only.
func (d *Directory) notify(ctx context.Context, to, subject, body string) {
	if err := d.notifier.Notify(ctx, to, subject, body); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("to", to).Msg("failed to send notification")
	}
}

func verificationCode() (string, error) {
	// 100000..999999
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()+100000), nil
}

func verificationBody(a core.Account, ttl time.Duration) string {
	return fmt.Sprintf(
		"Halo %s,\n\nGunakan kode berikut untuk memverifikasi email Anda:\n\n    %s\n\nKode ini berlaku selama %d menit.",
		a.Name, a.VerificationCode, int(ttl.Minutes()))
}
