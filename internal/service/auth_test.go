package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pcist/pcist-backend/internal/api/dto"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/testutil"
)

var otpPattern = regexp.MustCompile(`\d{6}`)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	authService AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.authService = NewAuthService(newTestParams(&s.BaseServiceTestSuite, nil))
}

func (s *AuthServiceSuite) signupRequest() *dto.SignupRequest {
	return &dto.SignupRequest{
		ClassRoll: 190204,
		Email:     "rahim@gmail.com",
		Password:  "super-secret",
		Name:      "Rahim Uddin",
		Batch:     "2019",
		Dept:      "CSE",
	}
}

// lastOTP pulls the six-digit code out of the most recent email body.
func (s *AuthServiceSuite) lastOTP() string {
	sent := s.GetEmail().LastSent()
	s.Require().NotNil(sent, "expected an otp email")
	code := otpPattern.FindString(sent.HTML)
	s.Require().NotEmpty(code, "otp missing from email body")
	return code
}

func (s *AuthServiceSuite) TestSignupCreatesUnverifiedUser() {
	resp, err := s.authService.Signup(s.GetContext(), s.signupRequest())
	s.NoError(err)
	s.Equal(190204, resp.ClassRoll)
	s.False(resp.EmailVerified)
	s.Contains(resp.Slug, "rahim-uddin")

	sent := s.GetEmail().LastSent()
	s.Require().NotNil(sent)
	s.Equal("rahim@gmail.com", sent.To)
}

func (s *AuthServiceSuite) TestSignupRejectsNonGmail() {
	req := s.signupRequest()
	req.Email = "rahim@example.org"
	_, err := s.authService.Signup(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestSignupRejectsDuplicateClassRoll() {
	_, err := s.authService.Signup(s.GetContext(), s.signupRequest())
	s.Require().NoError(err)

	dup := s.signupRequest()
	dup.Email = "other@gmail.com"
	_, err = s.authService.Signup(s.GetContext(), dup)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestVerifyEmailIssuesToken() {
	_, err := s.authService.Signup(s.GetContext(), s.signupRequest())
	s.Require().NoError(err)

	resp, err := s.authService.VerifyEmail(s.GetContext(), &dto.VerifyEmailRequest{
		Email: "rahim@gmail.com",
		OTP:   s.lastOTP(),
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.True(resp.User.EmailVerified)
}

func (s *AuthServiceSuite) TestVerifyEmailRejectsWrongCode() {
	_, err := s.authService.Signup(s.GetContext(), s.signupRequest())
	s.Require().NoError(err)

	_, err = s.authService.VerifyEmail(s.GetContext(), &dto.VerifyEmailRequest{
		Email: "rahim@gmail.com",
		OTP:   "000000",
	})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestOTPIsSingleUse() {
	_, err := s.authService.Signup(s.GetContext(), s.signupRequest())
	s.Require().NoError(err)

	otp := s.lastOTP()
	_, err = s.authService.VerifyEmail(s.GetContext(), &dto.VerifyEmailRequest{Email: "rahim@gmail.com", OTP: otp})
	s.Require().NoError(err)

	_, err = s.authService.VerifyEmail(s.GetContext(), &dto.VerifyEmailRequest{Email: "rahim@gmail.com", OTP: otp})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestLoginByClassRoll() {
	_, err := s.authService.Signup(s.GetContext(), s.signupRequest())
	s.Require().NoError(err)
	_, err = s.authService.VerifyEmail(s.GetContext(), &dto.VerifyEmailRequest{Email: "rahim@gmail.com", OTP: s.lastOTP()})
	s.Require().NoError(err)

	resp, err := s.authService.Login(s.GetContext(), &dto.LoginRequest{
		ClassRoll: 190204,
		Password:  "super-secret",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal("rahim@gmail.com", resp.User.Email)
}

func (s *AuthServiceSuite) TestLoginRequiresVerifiedEmail() {
	_, err := s.authService.Signup(s.GetContext(), s.signupRequest())
	s.Require().NoError(err)

	_, err = s.authService.Login(s.GetContext(), &dto.LoginRequest{
		ClassRoll: 190204,
		Password:  "super-secret",
	})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestLoginRejectsWrongPassword() {
	_, err := s.authService.Signup(s.GetContext(), s.signupRequest())
	s.Require().NoError(err)
	_, err = s.authService.VerifyEmail(s.GetContext(), &dto.VerifyEmailRequest{Email: "rahim@gmail.com", OTP: s.lastOTP()})
	s.Require().NoError(err)

	_, err = s.authService.Login(s.GetContext(), &dto.LoginRequest{
		ClassRoll: 190204,
		Password:  "not-the-password",
	})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestAdminLogin() {
	s.GetConfig().Auth.AdminEmail = "admin@pcist.org"
	s.GetConfig().Auth.AdminPassword = "admin-pass"

	resp, err := s.authService.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "admin@pcist.org",
		Password: "admin-pass",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)

	_, err = s.authService.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "admin@pcist.org",
		Password: "wrong",
	})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestPasswordRecovery() {
	_, err := s.authService.Signup(s.GetContext(), s.signupRequest())
	s.Require().NoError(err)
	_, err = s.authService.VerifyEmail(s.GetContext(), &dto.VerifyEmailRequest{Email: "rahim@gmail.com", OTP: s.lastOTP()})
	s.Require().NoError(err)

	err = s.authService.ForgotPassword(s.GetContext(), &dto.ForgotPasswordRequest{Email: "rahim@gmail.com"})
	s.Require().NoError(err)

	err = s.authService.ResetPassword(s.GetContext(), &dto.ResetPasswordRequest{
		Email:       "rahim@gmail.com",
		OTP:         s.lastOTP(),
		NewPassword: "brand-new-pass",
	})
	s.Require().NoError(err)

	_, err = s.authService.Login(s.GetContext(), &dto.LoginRequest{ClassRoll: 190204, Password: "super-secret"})
	s.Error(err)

	resp, err := s.authService.Login(s.GetContext(), &dto.LoginRequest{ClassRoll: 190204, Password: "brand-new-pass"})
	s.NoError(err)
	s.NotEmpty(resp.Token)
}

func (s *AuthServiceSuite) TestForgotPasswordHidesUnknownEmail() {
	before := len(s.GetEmail().Sent)
	err := s.authService.ForgotPassword(s.GetContext(), &dto.ForgotPasswordRequest{Email: "nobody@gmail.com"})
	s.NoError(err)
	s.Len(s.GetEmail().Sent, before)
}
