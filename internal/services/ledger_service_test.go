package services

import (
	"context"
	"testing"

	"committee-backend/internal/models"
	"committee-backend/internal/repositories/memory"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	monthJune      = "june_2025"
	monthJuly      = "july_2025"
	monthAugust    = "august_2025"
	monthSeptember = "september_2025"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	repo     *memory.MemberRepository
	sequence *models.Sequence
	service  *LedgerServiceImpl
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = memory.NewMemberRepository()
	s.sequence = models.NewSequence([]string{monthJune, monthJuly, monthAugust, monthSeptember})
	s.service = NewLedgerService(s.repo, s.sequence)
}

func (s *LedgerServiceTestSuite) addMember(fullName, mobileNumber string) *models.Member {
	member, err := s.service.AddMember(s.ctx, monthJune, &CreateMemberInput{
		FullName:     fullName,
		MobileNumber: mobileNumber,
	})
	s.Require().NoError(err)
	return member
}

// seed inserts directly through the store, bypassing the starting-month-only
// rule, for tests that need a populated later month.
func (s *LedgerServiceTestSuite) seed(month string, member *models.Member) *models.Member {
	s.Require().NoError(s.repo.Create(s.ctx, month, member))
	return member
}

func (s *LedgerServiceTestSuite) TestAddMemberDefaults() {
	member := s.addMember("Asha Verma", "9800000001")

	s.False(member.ID.IsZero())
	s.Equal(models.FamilyIndividual, member.Family)
	s.Equal(models.PaymentStatusPending, member.PaymentStatus)
	s.Equal(models.NotDrawn(), member.DrawStatus)
	s.Nil(member.TokenNumber)
}

func (s *LedgerServiceTestSuite) TestAddMemberValidation() {
	_, err := s.service.AddMember(s.ctx, monthJune, &CreateMemberInput{MobileNumber: "9800000001"})
	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
	s.Equal("fullName", validationErr.Field)

	_, err = s.service.AddMember(s.ctx, monthJune, &CreateMemberInput{FullName: "Asha Verma"})
	s.ErrorAs(err, &validationErr)
	s.Equal("mobileNumber", validationErr.Field)

	_, err = s.service.AddMember(s.ctx, monthJune, &CreateMemberInput{
		FullName:      "Asha Verma",
		MobileNumber:  "9800000001",
		PaymentStatus: models.PaymentStatusNoPaymentRequired,
	})
	s.ErrorAs(err, &validationErr)
	s.Equal("paymentStatus", validationErr.Field)
}

func (s *LedgerServiceTestSuite) TestAddMemberOnlyInStartingMonth() {
	_, err := s.service.AddMember(s.ctx, monthJuly, &CreateMemberInput{
		FullName:     "Asha Verma",
		MobileNumber: "9800000001",
	})

	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
	s.Equal("month", validationErr.Field)
}

func (s *LedgerServiceTestSuite) TestAddMemberUnknownMonth() {
	_, err := s.service.AddMember(s.ctx, "march_2030", &CreateMemberInput{
		FullName:     "Asha Verma",
		MobileNumber: "9800000001",
	})

	var notFoundErr *NotFoundError
	s.ErrorAs(err, &notFoundErr)
	s.Equal("month", notFoundErr.What)
}

func (s *LedgerServiceTestSuite) TestListMembersOrderedCaseInsensitive() {
	s.addMember("charu Singh", "9800000003")
	s.addMember("Asha Verma", "9800000001")
	s.addMember("Bilal Khan", "9800000002")

	members, err := s.service.ListMembers(s.ctx, monthJune)
	s.Require().NoError(err)
	s.Require().Len(members, 3)
	s.Equal("Asha Verma", members[0].FullName)
	s.Equal("Bilal Khan", members[1].FullName)
	s.Equal("charu Singh", members[2].FullName)
}

func (s *LedgerServiceTestSuite) TestAssignTokensAlphabetical() {
	s.addMember("Charu Singh", "9800000003")
	s.addMember("Asha Verma", "9800000001")
	s.addMember("Bilal Khan", "9800000002")

	members, err := s.service.AssignTokens(s.ctx, monthJune)
	s.Require().NoError(err)
	s.Require().Len(members, 3)

	s.Equal("Asha Verma", members[0].FullName)
	s.Equal(1, *members[0].TokenNumber)
	s.Equal("Bilal Khan", members[1].FullName)
	s.Equal(2, *members[1].TokenNumber)
	s.Equal("Charu Singh", members[2].FullName)
	s.Equal(3, *members[2].TokenNumber)
}

func (s *LedgerServiceTestSuite) TestAssignTokensClearsStaleNumbers() {
	stale := 99
	s.seed(monthJune, &models.Member{
		FullName:      "Charu Singh",
		MobileNumber:  "9800000003",
		Family:        models.FamilyIndividual,
		PaymentStatus: models.PaymentStatusPending,
		DrawStatus:    models.NotDrawn(),
		TokenNumber:   &stale,
	})
	s.addMember("Asha Verma", "9800000001")

	members, err := s.service.AssignTokens(s.ctx, monthJune)
	s.Require().NoError(err)
	s.Require().Len(members, 2)

	seen := map[int]bool{}
	for _, m := range members {
		s.Require().NotNil(m.TokenNumber)
		s.False(seen[*m.TokenNumber], "duplicate token %d", *m.TokenNumber)
		seen[*m.TokenNumber] = true
	}
	s.True(seen[1])
	s.True(seen[2])
	s.False(seen[99])
}

func (s *LedgerServiceTestSuite) TestAddMemberTokenMustBeUniqueAndPositive() {
	five := 5
	_, err := s.service.AddMember(s.ctx, monthJune, &CreateMemberInput{
		FullName:     "Asha Verma",
		MobileNumber: "9800000001",
		TokenNumber:  &five,
	})
	s.Require().NoError(err)

	duplicate := 5
	_, err = s.service.AddMember(s.ctx, monthJune, &CreateMemberInput{
		FullName:     "Bilal Khan",
		MobileNumber: "9800000002",
		TokenNumber:  &duplicate,
	})
	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
	s.Equal("tokenNumber", validationErr.Field)

	zero := 0
	_, err = s.service.AddMember(s.ctx, monthJune, &CreateMemberInput{
		FullName:     "Bilal Khan",
		MobileNumber: "9800000002",
		TokenNumber:  &zero,
	})
	s.ErrorAs(err, &validationErr)
	s.Equal("tokenNumber", validationErr.Field)

	six := 6
	_, err = s.service.AddMember(s.ctx, monthJune, &CreateMemberInput{
		FullName:     "Bilal Khan",
		MobileNumber: "9800000002",
		TokenNumber:  &six,
	})
	s.NoError(err)

	members, err := s.service.ListMembers(s.ctx, monthJune)
	s.Require().NoError(err)
	s.Require().Len(members, 2)
}

func (s *LedgerServiceTestSuite) TestAssignTokensEmptyRoster() {
	_, err := s.service.AssignTokens(s.ctx, monthJune)

	var emptyErr *EmptyRosterError
	s.ErrorAs(err, &emptyErr)
	s.Equal(monthJune, emptyErr.Month)
}

func (s *LedgerServiceTestSuite) TestDeclareWinner() {
	member := s.addMember("Asha Verma", "9800000001")

	winner, err := s.service.DeclareWinner(s.ctx, monthJune, member.ID)
	s.Require().NoError(err)
	s.True(winner.DrawStatus.IsWinnerOf(monthJune))
}

func (s *LedgerServiceTestSuite) TestDeclareWinnerDuplicateRejected() {
	first := s.addMember("Asha Verma", "9800000001")
	second := s.addMember("Bilal Khan", "9800000002")

	_, err := s.service.DeclareWinner(s.ctx, monthJune, first.ID)
	s.Require().NoError(err)

	_, err = s.service.DeclareWinner(s.ctx, monthJune, second.ID)
	var duplicateErr *DuplicateWinnerError
	s.ErrorAs(err, &duplicateErr)
	s.Equal(monthJune, duplicateErr.Month)
	s.Contains(err.Error(), monthJune)

	// first remains the sole winner marker for the month
	stored, err := s.repo.FindWinner(s.ctx, monthJune)
	s.Require().NoError(err)
	s.Equal(first.ID, stored.ID)

	other, err := s.repo.FindByID(s.ctx, monthJune, second.ID)
	s.Require().NoError(err)
	s.Equal(models.NotDrawn(), other.DrawStatus)
}

func (s *LedgerServiceTestSuite) TestDeclareWinnerNotFound() {
	s.addMember("Asha Verma", "9800000001")

	_, err := s.service.DeclareWinner(s.ctx, monthJune, primitive.NewObjectID())
	var notFoundErr *NotFoundError
	s.ErrorAs(err, &notFoundErr)
}

func (s *LedgerServiceTestSuite) TestUpdateMemberProtectedPaymentFields() {
	member := s.addMember("Asha Verma", "9800000001")
	_, err := s.service.DeclareWinner(s.ctx, monthJune, member.ID)
	s.Require().NoError(err)

	paid := models.PaymentStatusPaid
	_, err = s.service.UpdateMember(s.ctx, monthJune, member.ID, &UpdateMemberInput{PaymentStatus: &paid})
	var invariantErr *InvariantViolationError
	s.ErrorAs(err, &invariantErr)

	recipient := "Bilal Khan"
	_, err = s.service.UpdateMember(s.ctx, monthJune, member.ID, &UpdateMemberInput{PaidTo: &recipient})
	s.ErrorAs(err, &invariantErr)

	// non-payment fields stay editable
	note := "collects in person"
	updated, err := s.service.UpdateMember(s.ctx, monthJune, member.ID, &UpdateMemberInput{AdditionalInformation: &note})
	s.Require().NoError(err)
	s.Equal(note, updated.AdditionalInformation)
}

func (s *LedgerServiceTestSuite) TestUpdateMemberExemptIsProtected() {
	member := s.seed(monthJuly, &models.Member{
		FullName:      "Asha Verma",
		MobileNumber:  "9800000001",
		Family:        models.FamilyIndividual,
		PaymentStatus: models.PaymentStatusNoPaymentRequired,
		DrawStatus:    models.Drawn(),
	})

	paid := models.PaymentStatusPaid
	_, err := s.service.UpdateMember(s.ctx, monthJuly, member.ID, &UpdateMemberInput{PaymentStatus: &paid})
	var invariantErr *InvariantViolationError
	s.ErrorAs(err, &invariantErr)
}

func (s *LedgerServiceTestSuite) TestUpdateMemberMergesPatch() {
	member := s.addMember("Asha Verma", "9800000001")

	paid := models.PaymentStatusPaid
	recipient := "Bilal Khan"
	family := ""
	updated, err := s.service.UpdateMember(s.ctx, monthJune, member.ID, &UpdateMemberInput{
		PaymentStatus: &paid,
		PaidTo:        &recipient,
		Family:        &family,
	})
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusPaid, updated.PaymentStatus)
	s.Equal(recipient, updated.PaidTo)
	s.Equal(models.FamilyIndividual, updated.Family)
	s.Equal("Asha Verma", updated.FullName)
}

func (s *LedgerServiceTestSuite) TestUpdateMemberNotFound() {
	note := "n/a"
	_, err := s.service.UpdateMember(s.ctx, monthJune, primitive.NewObjectID(), &UpdateMemberInput{AdditionalInformation: &note})

	var notFoundErr *NotFoundError
	s.ErrorAs(err, &notFoundErr)
}

func (s *LedgerServiceTestSuite) TestDeleteMember() {
	member := s.addMember("Asha Verma", "9800000001")

	s.Require().NoError(s.service.DeleteMember(s.ctx, monthJune, member.ID))

	var notFoundErr *NotFoundError
	err := s.service.DeleteMember(s.ctx, monthJune, member.ID)
	s.ErrorAs(err, &notFoundErr)
}

// The canonical three-member scenario: tokens, a winner, then an advance.
func (s *LedgerServiceTestSuite) TestAdvanceScenario() {
	s.addMember("Asha Verma", "9800000001")
	b := s.addMember("Bilal Khan", "9800000002")
	s.addMember("Charu Singh", "9800000003")

	_, err := s.service.AssignTokens(s.ctx, monthJune)
	s.Require().NoError(err)

	_, err = s.service.DeclareWinner(s.ctx, monthJune, b.ID)
	s.Require().NoError(err)

	nextMonth, err := s.service.AdvanceToNextMonth(s.ctx, monthJune)
	s.Require().NoError(err)
	s.Equal(monthJuly, nextMonth)

	members, err := s.service.ListMembers(s.ctx, monthJuly)
	s.Require().NoError(err)
	s.Require().Len(members, 3)

	asha, bilal, charu := members[0], members[1], members[2]

	s.Equal(models.PaymentStatusPending, asha.PaymentStatus)
	s.Equal(models.NotDrawn(), asha.DrawStatus)
	s.Equal(1, *asha.TokenNumber)

	s.Equal(models.PaymentStatusNoPaymentRequired, bilal.PaymentStatus)
	s.Equal(models.Drawn(), bilal.DrawStatus)
	s.Empty(bilal.PaidTo)
	s.Equal(2, *bilal.TokenNumber)

	s.Equal(models.PaymentStatusPending, charu.PaymentStatus)
	s.Equal(models.NotDrawn(), charu.DrawStatus)
	s.Equal(3, *charu.TokenNumber)
}

func (s *LedgerServiceTestSuite) TestAdvanceResetsPaymentState() {
	member := s.addMember("Asha Verma", "9800000001")

	paid := models.PaymentStatusPaid
	recipient := "Bilal Khan"
	_, err := s.service.UpdateMember(s.ctx, monthJune, member.ID, &UpdateMemberInput{
		PaymentStatus: &paid,
		PaidTo:        &recipient,
	})
	s.Require().NoError(err)

	_, err = s.service.AdvanceToNextMonth(s.ctx, monthJune)
	s.Require().NoError(err)

	members, err := s.service.ListMembers(s.ctx, monthJuly)
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal(models.PaymentStatusPending, members[0].PaymentStatus)
	s.Empty(members[0].PaidTo)
}

func (s *LedgerServiceTestSuite) TestAdvanceNotIdempotent() {
	s.addMember("Asha Verma", "9800000001")
	b := s.addMember("Bilal Khan", "9800000002")

	_, err := s.service.DeclareWinner(s.ctx, monthJune, b.ID)
	s.Require().NoError(err)

	_, err = s.service.AdvanceToNextMonth(s.ctx, monthJune)
	s.Require().NoError(err)

	_, err = s.service.AdvanceToNextMonth(s.ctx, monthJune)
	var seededErr *AlreadySeededError
	s.ErrorAs(err, &seededErr)
	s.Equal(monthJuly, seededErr.Month)

	// the seeded roster is unchanged after the failed second call
	members, err := s.service.ListMembers(s.ctx, monthJuly)
	s.Require().NoError(err)
	s.Require().Len(members, 2)
	s.Equal(models.PaymentStatusNoPaymentRequired, members[1].PaymentStatus)
}

func (s *LedgerServiceTestSuite) TestAdvanceEndOfSequence() {
	s.seed(monthSeptember, &models.Member{
		FullName:      "Asha Verma",
		MobileNumber:  "9800000001",
		Family:        models.FamilyIndividual,
		PaymentStatus: models.PaymentStatusPending,
		DrawStatus:    models.NotDrawn(),
	})

	_, err := s.service.AdvanceToNextMonth(s.ctx, monthSeptember)
	var endErr *EndOfSequenceError
	s.ErrorAs(err, &endErr)
	s.Equal(monthSeptember, endErr.Month)
}

func (s *LedgerServiceTestSuite) TestAdvanceEmptyRoster() {
	_, err := s.service.AdvanceToNextMonth(s.ctx, monthJune)

	var emptyErr *EmptyRosterError
	s.ErrorAs(err, &emptyErr)
}

// A member who won two months ago must stay exempt even if the intervening
// month's row lost its DRAWN marker.
func (s *LedgerServiceTestSuite) TestAdvanceCatchesMultiMonthDrift() {
	a := s.addMember("Asha Verma", "9800000001")
	s.addMember("Bilal Khan", "9800000002")

	_, err := s.service.DeclareWinner(s.ctx, monthJune, a.ID)
	s.Require().NoError(err)
	_, err = s.service.AdvanceToNextMonth(s.ctx, monthJune)
	s.Require().NoError(err)

	// corrupt the July row: Asha's past win disappears from it
	julyAsha, err := s.repo.FindByNameAndMobile(s.ctx, monthJuly, "Asha Verma", "9800000001")
	s.Require().NoError(err)
	julyAsha.DrawStatus = models.NotDrawn()
	julyAsha.PaymentStatus = models.PaymentStatusPending
	s.Require().NoError(s.repo.Update(s.ctx, monthJuly, julyAsha))

	julyBilal, err := s.repo.FindByNameAndMobile(s.ctx, monthJuly, "Bilal Khan", "9800000002")
	s.Require().NoError(err)
	_, err = s.service.DeclareWinner(s.ctx, monthJuly, julyBilal.ID)
	s.Require().NoError(err)

	_, err = s.service.AdvanceToNextMonth(s.ctx, monthJuly)
	s.Require().NoError(err)

	augustAsha, err := s.repo.FindByNameAndMobile(s.ctx, monthAugust, "Asha Verma", "9800000001")
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusNoPaymentRequired, augustAsha.PaymentStatus)
	s.Equal(models.Drawn(), augustAsha.DrawStatus)
}

// Renaming a past winner in a later month must not hide the win from the
// advance classification; past winners are matched by mobile number.
func (s *LedgerServiceTestSuite) TestAdvanceCatchesDriftAfterRename() {
	a := s.addMember("Asha Verma", "9800000001")
	s.addMember("Bilal Khan", "9800000002")

	_, err := s.service.DeclareWinner(s.ctx, monthJune, a.ID)
	s.Require().NoError(err)
	_, err = s.service.AdvanceToNextMonth(s.ctx, monthJune)
	s.Require().NoError(err)

	// rename her July row, then strip its past-win marker
	julyAsha, err := s.repo.FindByNameAndMobile(s.ctx, monthJuly, "Asha Verma", "9800000001")
	s.Require().NoError(err)
	newName := "Asha Sharma"
	_, err = s.service.UpdateMember(s.ctx, monthJuly, julyAsha.ID, &UpdateMemberInput{FullName: &newName})
	s.Require().NoError(err)

	julyAsha, err = s.repo.FindByID(s.ctx, monthJuly, julyAsha.ID)
	s.Require().NoError(err)
	julyAsha.DrawStatus = models.NotDrawn()
	julyAsha.PaymentStatus = models.PaymentStatusPending
	s.Require().NoError(s.repo.Update(s.ctx, monthJuly, julyAsha))

	julyBilal, err := s.repo.FindByNameAndMobile(s.ctx, monthJuly, "Bilal Khan", "9800000002")
	s.Require().NoError(err)
	_, err = s.service.DeclareWinner(s.ctx, monthJuly, julyBilal.ID)
	s.Require().NoError(err)

	_, err = s.service.AdvanceToNextMonth(s.ctx, monthJuly)
	s.Require().NoError(err)

	augustAsha, err := s.repo.FindByNameAndMobile(s.ctx, monthAugust, "Asha Sharma", "9800000001")
	s.Require().NoError(err)
	s.Equal(models.PaymentStatusNoPaymentRequired, augustAsha.PaymentStatus)
	s.Equal(models.Drawn(), augustAsha.DrawStatus)
}

func (s *LedgerServiceTestSuite) TestMonthSummary() {
	s.addMember("Asha Verma", "9800000001")
	b := s.addMember("Bilal Khan", "9800000002")
	s.addMember("Charu Singh", "9800000003")

	_, err := s.service.AssignTokens(s.ctx, monthJune)
	s.Require().NoError(err)
	_, err = s.service.DeclareWinner(s.ctx, monthJune, b.ID)
	s.Require().NoError(err)

	summary, err := s.service.MonthSummary(s.ctx, monthJune)
	s.Require().NoError(err)
	s.Equal(monthJune, summary.Month)
	s.Equal(3, summary.TotalMembers)
	s.Equal(3, summary.Pending)
	s.Equal(3, summary.TokensAssigned)
	s.Require().NotNil(summary.Winner)
	s.Equal(b.ID, summary.Winner.ID)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
