package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Ananeya/asset-management-system/internal"
	itemDatamodel "github.com/Ananeya/asset-management-system/internal/core/datamodel/item"
	"github.com/Ananeya/asset-management-system/internal/item"
)

func TestItemRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ItemRepository Suite")
}

var _ = Describe("ItemRepository", func() {
	var (
		db   *gorm.DB
		repo item.Repository
	)

	createItem := func(name, category string) *item.Item {
		it := &item.Item{
			Name:         name,
			Category:     category,
			Availability: true,
			Status:       "available",
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		Expect(repo.Create(it)).To(Succeed())
		return it
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&itemDatamodel.Item{},
			&itemDatamodel.HistoryEntry{},
			&itemDatamodel.IssueReport{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = NewItemRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create and GetByID", func() {
		It("should persist the item and read it back with empty associations", func() {
			created := createItem("ThinkPad X1", "laptop")
			Expect(created.ID).NotTo(BeZero())

			fetched, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.Name).To(Equal("ThinkPad X1"))
			Expect(fetched.Availability).To(BeTrue())
			Expect(fetched.History).To(BeEmpty())
			Expect(fetched.IssueReports).To(BeEmpty())
		})

		It("should return a not-found error for a missing id", func() {
			_, err := repo.GetByID(12345)
			Expect(err).To(Equal(internal.ErrItemNotFound))
		})
	})

	Describe("AssignIfAvailable", func() {
		It("should set the assignee, flip availability and write one history row", func() {
			created := createItem("ThinkPad X1", "laptop")

			err := repo.AssignIfAvailable(created.ID, 1, time.Now())
			Expect(err).NotTo(HaveOccurred())

			fetched, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.Availability).To(BeFalse())
			Expect(*fetched.AssignedTo).To(Equal(int64(1)))
			Expect(fetched.History).To(HaveLen(1))
			Expect(fetched.History[0].Status).To(Equal(item.HistoryStatusAssigned))
		})

		It("should lose the second of two conditional assigns", func() {
			created := createItem("ThinkPad X1", "laptop")

			Expect(repo.AssignIfAvailable(created.ID, 1, time.Now())).To(Succeed())

			err := repo.AssignIfAvailable(created.ID, 2, time.Now())
			Expect(err).To(Equal(internal.ErrItemAlreadyAssigned))

			fetched, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*fetched.AssignedTo).To(Equal(int64(1)))
			Expect(fetched.History).To(HaveLen(1))
		})
	})

	Describe("ReassignIfAssigned", func() {
		It("should refuse when no assignee is present", func() {
			created := createItem("ThinkPad X1", "laptop")

			err := repo.ReassignIfAssigned(created.ID, 2, time.Now())
			Expect(err).To(Equal(internal.ErrItemNotAssigned))
		})

		It("should swap the holder and append a reassigned history row", func() {
			created := createItem("ThinkPad X1", "laptop")

			Expect(repo.AssignIfAvailable(created.ID, 1, time.Now())).To(Succeed())
			Expect(repo.ReassignIfAssigned(created.ID, 2, time.Now())).To(Succeed())

			fetched, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*fetched.AssignedTo).To(Equal(int64(2)))
			Expect(fetched.Availability).To(BeFalse())
			Expect(fetched.History).To(HaveLen(2))
			Expect(fetched.History[1].Status).To(Equal(item.HistoryStatusReassigned))
			Expect(fetched.History[1].UserID).To(Equal(int64(2)))
		})
	})

	Describe("Search", func() {
		It("should match name and category case-insensitively", func() {
			createItem("ThinkPad X1", "Laptop")
			createItem("Dell U2723QE", "monitor")

			byName, err := repo.Search("THINKPAD")
			Expect(err).NotTo(HaveOccurred())
			Expect(byName).To(HaveLen(1))
			Expect(byName[0].Name).To(Equal("ThinkPad X1"))

			byCategory, err := repo.Search("laptop")
			Expect(err).NotTo(HaveOccurred())
			Expect(byCategory).To(HaveLen(1))
		})

		It("should return all items for an empty query", func() {
			createItem("ThinkPad X1", "laptop")
			createItem("Dell U2723QE", "monitor")

			results, err := repo.Search("")
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
		})
	})

	Describe("Filter", func() {
		It("should filter on availability and assignee", func() {
			first := createItem("ThinkPad X1", "laptop")
			createItem("Dell U2723QE", "monitor")

			Expect(repo.AssignIfAvailable(first.ID, 7, time.Now())).To(Succeed())

			avail := true
			available, err := repo.Filter(item.ItemFilter{Availability: &avail})
			Expect(err).NotTo(HaveOccurred())
			Expect(available).To(HaveLen(1))

			holder := int64(7)
			held, err := repo.Filter(item.ItemFilter{AssignedTo: &holder})
			Expect(err).NotTo(HaveOccurred())
			Expect(held).To(HaveLen(1))
			Expect(held[0].ID).To(Equal(first.ID))
		})
	})

	Describe("ApplyUpdate", func() {
		It("should update only the provided fields", func() {
			created := createItem("ThinkPad X1", "laptop")

			newName := "ThinkPad X1 Carbon"
			Expect(repo.ApplyUpdate(created.ID, item.UpdateItemDTO{Name: &newName})).To(Succeed())

			fetched, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.Name).To(Equal("ThinkPad X1 Carbon"))
			Expect(fetched.Category).To(Equal("laptop"))
		})
	})

	Describe("UpdateStatusField", func() {
		It("should overwrite the status without touching history", func() {
			created := createItem("ThinkPad X1", "laptop")

			Expect(repo.AssignIfAvailable(created.ID, 1, time.Now())).To(Succeed())
			Expect(repo.UpdateStatusField(created.ID, "under repair")).To(Succeed())

			fetched, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.Status).To(Equal("under repair"))
			Expect(fetched.History).To(HaveLen(1))
		})
	})

	Describe("AppendIssueReport", func() {
		It("should append a pending report", func() {
			created := createItem("ThinkPad X1", "laptop")

			reporter := int64(1)
			Expect(repo.AppendIssueReport(created.ID, &reporter, "screen flickers")).To(Succeed())

			fetched, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.IssueReports).To(HaveLen(1))
			Expect(fetched.IssueReports[0].Issue).To(Equal("screen flickers"))
			Expect(fetched.IssueReports[0].Status).To(Equal(item.IssueStatusPending))
		})
	})

	Describe("Delete", func() {
		It("should remove the item together with history and reports", func() {
			created := createItem("ThinkPad X1", "laptop")

			Expect(repo.AssignIfAvailable(created.ID, 1, time.Now())).To(Succeed())
			reporter := int64(1)
			Expect(repo.AppendIssueReport(created.ID, &reporter, "screen flickers")).To(Succeed())

			Expect(repo.Delete(created.ID)).To(Succeed())

			_, err := repo.GetByID(created.ID)
			Expect(err).To(Equal(internal.ErrItemNotFound))

			var historyCount int64
			Expect(db.Model(&itemDatamodel.HistoryEntry{}).Count(&historyCount).Error).To(Succeed())
			Expect(historyCount).To(BeZero())

			var reportCount int64
			Expect(db.Model(&itemDatamodel.IssueReport{}).Count(&reportCount).Error).To(Succeed())
			Expect(reportCount).To(BeZero())
		})

		It("should report a missing item", func() {
			Expect(repo.Delete(999)).To(Equal(internal.ErrItemNotFound))
		})
	})
})
