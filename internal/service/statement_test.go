package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pcist/pcist-backend/internal/api/dto"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/s3"
	"github.com/pcist/pcist-backend/internal/testutil"
)

type StatementServiceSuite struct {
	testutil.BaseServiceTestSuite
	compositor       *stubCompositor
	statementService StatementService
}

func TestStatementService(t *testing.T) {
	suite.Run(t, new(StatementServiceSuite))
}

func (s *StatementServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.compositor = &stubCompositor{}
	s.statementService = NewStatementService(newTestParams(&s.BaseServiceTestSuite, s.compositor))
}

func (s *StatementServiceSuite) textRequest() *dto.GenerateStatementRequest {
	return &dto.GenerateStatementRequest{
		Subject: "Budget approval",
		Body:    "The committee approves the contest budget.",
		Authorizers: []dto.AuthorizerRequest{
			{Name: "Dr. Rahman", Role: "Moderator"},
		},
	}
}

func (s *StatementServiceSuite) TestGenerateTextStatement() {
	resp, err := s.statementService.Generate(s.GetContext(), s.textRequest())
	s.NoError(err)
	s.Equal("pcIST-2025-0001", resp.Serial)
	s.Equal("07 March 2025", resp.DateStr)
	s.False(resp.Sent)
	s.NotEmpty(resp.PDFURL)

	stored, err := s.statementService.GetByID(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(resp.Serial, stored.Serial)
	s.Equal("The committee approves the contest budget.", stored.Body)
}

func (s *StatementServiceSuite) TestGenerateWrapsUploadedPDF() {
	req := &dto.GenerateStatementRequest{
		Subject:        "Signed memo",
		SourcePDF:      []byte("%PDF-1.4 source"),
		AuthorizedBy:   "Dr. Rahman",
		AuthorizerRole: "Moderator",
	}

	resp, err := s.statementService.Generate(s.GetContext(), req)
	s.NoError(err)
	s.Empty(resp.Body)
	s.Equal([]byte("%PDF-1.4 source"), s.compositor.lastStatement.SourcePDF)
}

func (s *StatementServiceSuite) TestGenerateStoresRenderedCopy() {
	resp, err := s.statementService.Generate(s.GetContext(), s.textRequest())
	s.Require().NoError(err)

	stored, err := s.statementService.GetByID(s.GetContext(), resp.ID)
	s.Require().NoError(err)

	st, err := s.GetStores().StatementRepo.GetByID(s.GetContext(), stored.ID)
	s.Require().NoError(err)
	s.NotEmpty(st.PDFKey)

	pdf, err := s.GetS3().Get(s.GetContext(), s3.BucketDocuments, st.PDFKey)
	s.NoError(err)
	s.Contains(string(pdf), resp.Serial)
}

func (s *StatementServiceSuite) TestGenerateSendsEmailAttachment() {
	req := s.textRequest()
	req.ReceiverEmail = "treasurer@ist.edu"
	req.SendEmail = true

	resp, err := s.statementService.Generate(s.GetContext(), req)
	s.NoError(err)
	s.True(resp.Sent)
	s.NotNil(resp.SentAt)

	sent := s.GetEmail().LastSent()
	s.Require().NotNil(sent)
	s.Equal("treasurer@ist.edu", sent.To)
	s.Require().Len(sent.Attachments, 1)
	s.Equal(resp.Serial+".pdf", sent.Attachments[0].Filename)
	s.Equal("application/pdf", sent.Attachments[0].ContentType)
}

func (s *StatementServiceSuite) TestGenerateRequiresBodyOrPDF() {
	_, err := s.statementService.Generate(s.GetContext(), &dto.GenerateStatementRequest{
		Subject: "Empty",
	})
	s.True(ierr.IsValidation(err))
}

func (s *StatementServiceSuite) TestGenerateRejectsBodyAndPDFTogether() {
	req := s.textRequest()
	req.SourcePDF = []byte("%PDF-1.4 source")
	_, err := s.statementService.Generate(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
}

func (s *StatementServiceSuite) TestGenerateRejectsMixedAuthorizerForms() {
	req := s.textRequest()
	req.AuthorizedBy = "Someone Else"
	_, err := s.statementService.Generate(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
}

func (s *StatementServiceSuite) TestGenerateSendEmailNeedsReceiver() {
	req := s.textRequest()
	req.SendEmail = true
	_, err := s.statementService.Generate(s.GetContext(), req)
	s.True(ierr.IsValidation(err))
}

func (s *StatementServiceSuite) TestDownloadServesStoredCopy() {
	resp, err := s.statementService.Generate(s.GetContext(), s.textRequest())
	s.Require().NoError(err)

	dl, err := s.statementService.Download(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(resp.Serial+".pdf", dl.Filename)
	s.Contains(string(dl.PDF), resp.Serial)

	stored, err := s.statementService.GetByID(s.GetContext(), resp.ID)
	s.NoError(err)
	s.NotNil(stored.DownloadedAt)
}

func (s *StatementServiceSuite) TestDownloadRerendersTextWithoutStoredCopy() {
	// No object store configured: the download re-renders the text with
	// the issued serial and date reused verbatim.
	params := newTestParams(&s.BaseServiceTestSuite, s.compositor)
	params.S3 = nil
	svc := NewStatementService(params)

	resp, err := svc.Generate(s.GetContext(), s.textRequest())
	s.Require().NoError(err)

	dl, err := svc.Download(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(resp.Serial+".pdf", dl.Filename)
	s.Equal(resp.Serial, s.compositor.lastStatement.Serial)
	s.Equal(resp.DateStr, s.compositor.lastStatement.DateStr)
}

func (s *StatementServiceSuite) TestDownloadWrappedWithoutStoredCopyFails() {
	params := newTestParams(&s.BaseServiceTestSuite, s.compositor)
	params.S3 = nil
	svc := NewStatementService(params)

	resp, err := svc.Generate(s.GetContext(), &dto.GenerateStatementRequest{
		SourcePDF: []byte("%PDF-1.4 source"),
	})
	s.Require().NoError(err)

	_, err = svc.Download(s.GetContext(), resp.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *StatementServiceSuite) TestListReturnsGenerated() {
	_, err := s.statementService.Generate(s.GetContext(), s.textRequest())
	s.Require().NoError(err)
	_, err = s.statementService.Generate(s.GetContext(), s.textRequest())
	s.Require().NoError(err)

	list, err := s.statementService.List(s.GetContext(), nil)
	s.NoError(err)
	s.Len(list, 2)
}
