package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pcist/pcist-backend/internal/api/dto"
	ierr "github.com/pcist/pcist-backend/internal/errors"
	"github.com/pcist/pcist-backend/internal/s3"
	"github.com/pcist/pcist-backend/internal/testutil"
)

type GalleryServiceSuite struct {
	testutil.BaseServiceTestSuite
	galleryService GalleryService
	eventService   EventService
}

func TestGalleryService(t *testing.T) {
	suite.Run(t, new(GalleryServiceSuite))
}

func (s *GalleryServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestParams(&s.BaseServiceTestSuite, nil)
	s.galleryService = NewGalleryService(params)
	s.eventService = NewEventService(params)
}

func (s *GalleryServiceSuite) pngBytes() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *GalleryServiceSuite) TestUploadStoresImage() {
	resp, err := s.galleryService.Upload(s.GetContext(), &dto.UploadImageRequest{
		Caption: "Closing ceremony",
		Data:    s.pngBytes(),
	})
	s.NoError(err)
	s.NotEmpty(resp.PublicID)
	s.Equal("Closing ceremony", resp.Caption)
	s.NotEmpty(resp.URL)

	exists, err := s.GetS3().Exists(s.GetContext(), s3.BucketGallery, resp.PublicID+".png")
	s.NoError(err)
	s.True(exists)
}

func (s *GalleryServiceSuite) TestUploadRejectsNonImage() {
	_, err := s.galleryService.Upload(s.GetContext(), &dto.UploadImageRequest{
		Data: []byte("definitely not an image"),
	})
	s.True(ierr.IsValidation(err))
}

func (s *GalleryServiceSuite) TestUploadRejectsEmptyFile() {
	_, err := s.galleryService.Upload(s.GetContext(), &dto.UploadImageRequest{})
	s.True(ierr.IsValidation(err))
}

func (s *GalleryServiceSuite) TestUploadRejectsUnknownEvent() {
	_, err := s.galleryService.Upload(s.GetContext(), &dto.UploadImageRequest{
		EventID: "event_missing",
		Data:    s.pngBytes(),
	})
	s.True(ierr.IsNotFound(err))
}

func (s *GalleryServiceSuite) TestListByEvent() {
	ev, err := s.eventService.Create(s.GetContext(), &dto.CreateEventRequest{
		Name:      "Photo Walk",
		EventType: "social",
		Date:      time.Now().UTC(),
	})
	s.Require().NoError(err)

	_, err = s.galleryService.Upload(s.GetContext(), &dto.UploadImageRequest{
		EventID: ev.ID,
		Data:    s.pngBytes(),
	})
	s.Require().NoError(err)
	_, err = s.galleryService.Upload(s.GetContext(), &dto.UploadImageRequest{
		Data: s.pngBytes(),
	})
	s.Require().NoError(err)

	images, err := s.galleryService.ListByEvent(s.GetContext(), ev.ID)
	s.NoError(err)
	s.Require().Len(images, 1)
	s.Equal(ev.ID, images[0].EventID)
}
