package tag_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/document-management/internal"
	tagDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/tag"
	"github.com/frahmantamala/document-management/internal/tag"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestTagService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Tag Service Suite")
}

type MockRepository struct {
	tags   []*tagDatamodel.Tag
	nextID int64

	getAllErr error
	createErr error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{nextID: 1}
}

func (m *MockRepository) GetAll() ([]*tagDatamodel.Tag, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.tags, nil
}

func (m *MockRepository) GetByID(id int64) (*tagDatamodel.Tag, error) {
	for _, t := range m.tags {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRepository) GetByName(name string) (*tagDatamodel.Tag, error) {
	for _, t := range m.tags {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRepository) Create(t *tagDatamodel.Tag) error {
	if m.createErr != nil {
		return m.createErr
	}
	t.ID = m.nextID
	m.nextID++
	m.tags = append(m.tags, t)
	return nil
}

var _ = Describe("Tag Service", func() {
	var (
		mockRepo *MockRepository
		service  *tag.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = tag.NewService(mockRepo, logger)
	})

	Describe("GetAllTags", func() {
		It("should return all tags", func() {
			mockRepo.tags = []*tagDatamodel.Tag{
				{ID: 1, Name: "finance"},
				{ID: 2, Name: "legal"},
			}

			tags, err := service.GetAllTags()
			Expect(err).NotTo(HaveOccurred())
			Expect(tags).To(HaveLen(2))
			Expect(tags[0].Name).To(Equal("finance"))
		})

		It("should return an empty list when no tags exist", func() {
			tags, err := service.GetAllTags()
			Expect(err).NotTo(HaveOccurred())
			Expect(tags).To(BeEmpty())
		})
	})

	Describe("GetTagByID", func() {
		It("should map a missing tag to ErrRecordNotFound", func() {
			_, err := service.GetTagByID(42)
			Expect(err).To(MatchError(internal.ErrRecordNotFound))
		})
	})

	Describe("CreateTag", func() {
		It("should create a tag with a lowercased name", func() {
			created, err := service.CreateTag(&tag.CreateTagDTO{Name: "Finance"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Name).To(Equal("finance"))
			Expect(created.ID).To(BeNumerically(">", 0))
		})

		It("should return the existing tag when the name is taken", func() {
			first, err := service.CreateTag(&tag.CreateTagDTO{Name: "finance"})
			Expect(err).NotTo(HaveOccurred())

			second, err := service.CreateTag(&tag.CreateTagDTO{Name: "FINANCE"})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))
			Expect(mockRepo.tags).To(HaveLen(1))
		})

		It("should reject an empty name", func() {
			_, err := service.CreateTag(&tag.CreateTagDTO{Name: "   "})
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&tag.ValidationError{}))
		})
	})
})
