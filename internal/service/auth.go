package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"github.com/pcist/pcist-backend/internal/api/dto"
	"github.com/pcist/pcist-backend/internal/domain/user"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/types"
)

const tokenTTL = 72 * time.Hour

type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	ServiceParams
	otps *gocache.Cache
}

func NewAuthService(params ServiceParams) AuthService {
	expiry := params.Config.Auth.OTPExpiry
	if expiry == 0 {
		expiry = 10 * time.Minute
	}
	return &authService{
		ServiceParams: params,
		otps:          gocache.New(expiry, 2*expiry),
	}
}

// Signup creates an unverified account and emails a verification code.
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, _ := s.UserRepo.GetByClassRoll(ctx, req.ClassRoll); existing != nil {
		return nil, ierr.NewError("class roll already registered").
			WithHint("an account with this class roll already exists").
			WithReportableDetails(map[string]any{"classroll": req.ClassRoll}).
			Mark(ierr.ErrAlreadyExists)
	}
	if existing, _ := s.UserRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ierr.NewError("email already registered").
			WithHint("an account with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to hash password").
			Mark(ierr.ErrSystem)
	}

	u := &user.User{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		ClassRoll:    req.ClassRoll,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Slug:         buildSlug(req.Name, req.ClassRoll),
		Name:         req.Name,
		Phone:        req.Phone,
		Gender:       req.Gender,
		Batch:        req.Batch,
		Dept:         req.Dept,
		Role:         types.RoleMember,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}

	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.sendOTP(ctx, u.Email, "Verify your pcIST account")
	s.Logger.Infow("user signed up", "user_id", u.ID, "class_roll", u.ClassRoll)
	return dto.NewUserResponse(u), nil
}

// VerifyEmail consumes the signup OTP and returns a login token.
func (s *authService) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)
	if err := s.consumeOTP(email, req.OTP); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	u.EmailVerified = true
	u.UpdatedAt = time.Now().UTC()
	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(u)}, nil
}

// Login authenticates a member by class roll, or the super admin by the
// configured email/password pair.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email == s.Config.Auth.AdminEmail {
		if req.Password != s.Config.Auth.AdminPassword {
			return nil, invalidCredentials()
		}
		token, err := s.issueAdminToken()
		if err != nil {
			return nil, err
		}
		return &dto.AuthResponse{Token: token}, nil
	}

	u, err := s.UserRepo.GetByClassRoll(ctx, req.ClassRoll)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, invalidCredentials()
	}
	if !u.EmailVerified {
		return nil, ierr.NewError("email not verified").
			WithHint("verify your email before logging in").
			Mark(ierr.ErrPermissionDenied)
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(u)}, nil
}

// ForgotPassword emails a recovery code. An unknown email is reported as
// success so the endpoint cannot be used to probe accounts.
func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	email := strings.ToLower(req.Email)
	if _, err := s.UserRepo.GetByEmail(ctx, email); err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}

	s.sendOTP(ctx, email, "Your pcIST password recovery code")
	return nil
}

// ResetPassword consumes the recovery OTP and sets the new password.
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	email := strings.ToLower(req.Email)
	if err := s.consumeOTP(email, req.OTP); err != nil {
		return err
	}

	u, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to hash password").
			Mark(ierr.ErrSystem)
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return s.UserRepo.Update(ctx, u)
}

func (s *authService) sendOTP(ctx context.Context, email, subject string) {
	otp := generateOTP()
	s.otps.SetDefault(email, otp)

	if !s.Email.IsEnabled() {
		s.Logger.Warnw("email disabled, otp not delivered", "email", email)
		return
	}
	body := fmt.Sprintf("<p>Your verification code is <strong>%s</strong>. It expires in %s.</p>",
		otp, s.Config.Auth.OTPExpiry)
	if _, err := s.Email.Send(ctx, email, subject, body); err != nil {
		s.Logger.Errorw("failed to send otp email", "email", email, "error", err)
	}
}

func (s *authService) consumeOTP(email, otp string) error {
	stored, found := s.otps.Get(email)
	if !found || stored.(string) != otp {
		return ierr.NewError("invalid or expired code").
			WithHint("request a new verification code").
			Mark(ierr.ErrPermissionDenied)
	}
	s.otps.Delete(email)
	return nil
}

func (s *authService) issueToken(u *user.User) (string, error) {
	claims := jwt.MapClaims{
		"id":        u.ID,
		"classroll": u.ClassRoll,
		"email":     u.Email,
		"role":      int(u.Role),
		"exp":       time.Now().Add(tokenTTL).Unix(),
	}
	return s.sign(claims)
}

func (s *authService) issueAdminToken() (string, error) {
	claims := jwt.MapClaims{
		"id":    "admin",
		"email": s.Config.Auth.AdminEmail,
		"role":  int(types.RoleAdmin),
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	return s.sign(claims)
}

func (s *authService) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.Config.Auth.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to sign token").
			Mark(ierr.ErrSystem)
	}
	return signed, nil
}

func invalidCredentials() error {
	return ierr.NewError("invalid credentials").
		WithHint("check your roll/email and password").
		Mark(ierr.ErrPermissionDenied)
}

func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

func buildSlug(name string, classRoll int) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	var b strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return strconv.Itoa(classRoll)
	}
	return slug + "-" + strconv.Itoa(classRoll)
}
