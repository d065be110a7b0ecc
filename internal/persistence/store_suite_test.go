package persistence

import (
	"context"
	"errors"

	"github.com/stretchr/testify/suite"

	"github.com/petrijr/featuretour/pkg/api"
)

// TourStoreSuite exercises the TourStore contract. Backend suites embed it
// and set Store in SetupTest.
type TourStoreSuite struct {
	suite.Suite
	Store TourStore
	ctx   context.Context
}

func (s *TourStoreSuite) SetupSuite() {
	s.ctx = context.Background()
}

func sampleDocument(id string) api.TourDocument {
	hide := false
	return api.TourDocument{
		TourID:                id,
		TourName:              "Tour " + id,
		ShowNextButtonDefault: true,
		Steps: []api.StepDocument{
			{ElementID: "ButtonPushMe", Header: "Push me", Content: "Click \"here\"\nthen wait", Placement: api.PlacementTopCenter},
			{ElementID: "TextBoxName", Header: "Name", Content: "Type\tyour name", Placement: api.PlacementLeftCenter, ShowNextButton: &hide},
		},
	}
}

func (s *TourStoreSuite) TestSaveAndGet() {
	doc := sampleDocument("intro")
	s.Require().NoError(s.Store.SaveTour(s.ctx, doc))

	got, err := s.Store.GetTour(s.ctx, "intro")
	s.Require().NoError(err)
	s.Equal(doc, got)
}

func (s *TourStoreSuite) TestSaveReplacesExisting() {
	doc := sampleDocument("intro")
	s.Require().NoError(s.Store.SaveTour(s.ctx, doc))

	doc.TourName = "Renamed"
	doc.Steps = doc.Steps[:1]
	s.Require().NoError(s.Store.SaveTour(s.ctx, doc))

	got, err := s.Store.GetTour(s.ctx, "intro")
	s.Require().NoError(err)
	s.Equal("Renamed", got.TourName)
	s.Len(got.Steps, 1)
}

func (s *TourStoreSuite) TestGetNotFound() {
	_, err := s.Store.GetTour(s.ctx, "missing")
	s.True(errors.Is(err, ErrTourNotFound), "expected ErrTourNotFound, got %v", err)
}

func (s *TourStoreSuite) TestListOrderedByID() {
	for _, id := range []string{"b-tour", "a-tour", "c-tour"} {
		s.Require().NoError(s.Store.SaveTour(s.ctx, sampleDocument(id)))
	}

	docs, err := s.Store.ListTours(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(docs, 3)
	s.Equal("a-tour", docs[0].TourID)
	s.Equal("b-tour", docs[1].TourID)
	s.Equal("c-tour", docs[2].TourID)
}

func (s *TourStoreSuite) TestDelete() {
	s.Require().NoError(s.Store.SaveTour(s.ctx, sampleDocument("gone")))
	s.Require().NoError(s.Store.DeleteTour(s.ctx, "gone"))

	_, err := s.Store.GetTour(s.ctx, "gone")
	s.ErrorIs(err, ErrTourNotFound)
	s.ErrorIs(s.Store.DeleteTour(s.ctx, "gone"), ErrTourNotFound)

	docs, err := s.Store.ListTours(s.ctx)
	s.Require().NoError(err)
	s.Empty(docs)
}

func (s *TourStoreSuite) TestSaveRejectsInvalidDocument() {
	err := s.Store.SaveTour(s.ctx, api.TourDocument{TourName: "no id"})
	s.ErrorIs(err, api.ErrValidation)

	doc := sampleDocument("bad-placement")
	doc.Steps[0].Placement = api.Placement(99)
	s.ErrorIs(s.Store.SaveTour(s.ctx, doc), api.ErrInvalidPlacement)
}
