package item_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/Ananeya/asset-management-system/internal/auth"
	itemDatamodel "github.com/Ananeya/asset-management-system/internal/core/datamodel/item"
	"github.com/Ananeya/asset-management-system/internal/item"
	itemPostgres "github.com/Ananeya/asset-management-system/internal/item/postgres"
	"github.com/Ananeya/asset-management-system/internal/user"
)

var _ = Describe("Item Handler Integration", func() {
	var (
		db      *gorm.DB
		service *item.Service
		handler *item.Handler
		router  *chi.Mux

		employee    *auth.User
		otherUser   *auth.User
		storekeeper *auth.User
	)

	do := func(method, target string, body interface{}, as *auth.User) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, target, &buf)
		if as != nil {
			req = req.WithContext(auth.ContextWithUser(req.Context(), as))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	createItem := func(name string) *item.Item {
		it, err := service.Create(item.CreateItemDTO{Name: name, Category: "tool"})
		Expect(err).NotTo(HaveOccurred())
		return it
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&itemDatamodel.Item{},
			&itemDatamodel.HistoryEntry{},
			&itemDatamodel.IssueReport{},
		)
		Expect(err).NotTo(HaveOccurred())

		employee = &auth.User{ID: 1, Username: "employee1", Role: auth.RoleEmployee, Status: auth.StatusActive}
		otherUser = &auth.User{ID: 2, Username: "employee2", Role: auth.RoleEmployee, Status: auth.StatusActive}
		storekeeper = &auth.User{ID: 3, Username: "keeper", Role: auth.RoleStorekeeper, Status: auth.StatusActive}

		users := newMockUserDirectory()
		users.users[storekeeper.ID] = &user.User{
			ID: storekeeper.ID, Username: storekeeper.Username, Role: "storekeeper", Status: "active",
		}

		repo := itemPostgres.NewItemRepository(db)
		service = item.NewService(repo, users, nil, slogger)
		handler = item.NewHandler(service)

		router = chi.NewRouter()
		router.Route("/items", func(r chi.Router) {
			r.Get("/", handler.GetAllItems)
			r.Post("/", handler.CreateItem)
			r.Get("/search", handler.SearchItems)
			r.Get("/filter", handler.FilterItems)
			r.Get("/assigned", handler.AssignedItems)
			r.Post("/assign", handler.AssignItem)
			r.Post("/reassign", handler.ReassignItem)
			r.Post("/request", handler.RequestItem)
			r.Get("/{id}", handler.GetItem)
			r.Put("/{id}", handler.UpdateItem)
			r.Delete("/{id}", handler.DeleteItem)
			r.Put("/{id}/status", handler.UpdateStatus)
			r.Post("/{id}/report", handler.ReportIssue)
		})
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("POST /items", func() {
		It("should create an item and return 201", func() {
			w := do(http.MethodPost, "/items", map[string]string{
				"name":     "Bosch Drill",
				"category": "tool",
			}, storekeeper)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created item.Item
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).NotTo(BeZero())
			Expect(created.Availability).To(BeTrue())
			Expect(created.Status).To(Equal("available"))
		})

		It("should return 400 for a missing name", func() {
			w := do(http.MethodPost, "/items", map[string]string{"category": "tool"}, storekeeper)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /items/assign", func() {
		It("should assign an available item", func() {
			it := createItem("Bosch Drill")

			w := do(http.MethodPost, "/items/assign", map[string]int64{
				"itemId": it.ID,
				"userId": employee.ID,
			}, storekeeper)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Msg  string    `json:"msg"`
				Item item.Item `json:"item"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Msg).To(Equal("Item assigned successfully"))
			Expect(resp.Item.Availability).To(BeFalse())
			Expect(resp.Item.History).To(HaveLen(1))
		})

		It("should return 409 when the item is already assigned", func() {
			it := createItem("Bosch Drill")
			_, err := service.Assign(it.ID, employee.ID)
			Expect(err).NotTo(HaveOccurred())

			w := do(http.MethodPost, "/items/assign", map[string]int64{
				"itemId": it.ID,
				"userId": otherUser.ID,
			}, storekeeper)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("should return 404 for an unknown item", func() {
			w := do(http.MethodPost, "/items/assign", map[string]int64{
				"itemId": 999,
				"userId": employee.ID,
			}, storekeeper)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /items/reassign", func() {
		It("should return 409 when the item has no assignee", func() {
			it := createItem("Bosch Drill")

			w := do(http.MethodPost, "/items/reassign", map[string]int64{
				"itemId":    it.ID,
				"newUserId": otherUser.ID,
			}, storekeeper)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("should move the item to the new holder", func() {
			it := createItem("Bosch Drill")
			_, err := service.Assign(it.ID, employee.ID)
			Expect(err).NotTo(HaveOccurred())

			w := do(http.MethodPost, "/items/reassign", map[string]int64{
				"itemId":    it.ID,
				"newUserId": otherUser.ID,
			}, storekeeper)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Item item.Item `json:"item"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(*resp.Item.AssignedTo).To(Equal(otherUser.ID))
			Expect(resp.Item.History).To(HaveLen(2))
		})
	})

	Describe("PUT /items/{id}/status", func() {
		It("should let the holder update the status", func() {
			it := createItem("Bosch Drill")
			_, err := service.Assign(it.ID, employee.ID)
			Expect(err).NotTo(HaveOccurred())

			w := do(http.MethodPut, fmt.Sprintf("/items/%d/status", it.ID),
				map[string]string{"status": "under repair"}, employee)

			Expect(w.Code).To(Equal(http.StatusOK))

			var updated item.Item
			Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
			Expect(updated.Status).To(Equal("under repair"))
			Expect(updated.History).To(HaveLen(1))
		})

		It("should return 403 for a caller who does not hold the item", func() {
			it := createItem("Bosch Drill")
			_, err := service.Assign(it.ID, employee.ID)
			Expect(err).NotTo(HaveOccurred())

			w := do(http.MethodPut, fmt.Sprintf("/items/%d/status", it.ID),
				map[string]string{"status": "broken"}, otherUser)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("should return 401 without an authenticated user", func() {
			it := createItem("Bosch Drill")

			w := do(http.MethodPut, fmt.Sprintf("/items/%d/status", it.ID),
				map[string]string{"status": "broken"}, nil)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("POST /items/{id}/report", func() {
		It("should append a pending report for the holder", func() {
			it := createItem("Bosch Drill")
			_, err := service.Assign(it.ID, employee.ID)
			Expect(err).NotTo(HaveOccurred())

			w := do(http.MethodPost, fmt.Sprintf("/items/%d/report", it.ID),
				map[string]string{"issue": "chuck is loose"}, employee)

			Expect(w.Code).To(Equal(http.StatusOK))

			var updated item.Item
			Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
			Expect(updated.IssueReports).To(HaveLen(1))
			Expect(updated.IssueReports[0].Status).To(Equal("pending"))
		})
	})

	Describe("GET /items/search", func() {
		It("should match case-insensitively", func() {
			createItem("Bosch Drill")
			createItem("Ladder")

			w := do(http.MethodGet, "/items/search?query=DRILL", nil, nil)

			Expect(w.Code).To(Equal(http.StatusOK))

			var results []item.Item
			Expect(json.NewDecoder(w.Body).Decode(&results)).To(Succeed())
			Expect(results).To(HaveLen(1))
			Expect(results[0].Name).To(Equal("Bosch Drill"))
		})
	})

	Describe("GET /items/filter", func() {
		It("should return 400 for a malformed availability value", func() {
			w := do(http.MethodGet, "/items/filter?availability=maybe", nil, nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /items/assigned", func() {
		It("should return the caller's items", func() {
			first := createItem("Bosch Drill")
			createItem("Ladder")
			_, err := service.Assign(first.ID, employee.ID)
			Expect(err).NotTo(HaveOccurred())

			w := do(http.MethodGet, "/items/assigned", nil, employee)

			Expect(w.Code).To(Equal(http.StatusOK))

			var results []item.Item
			Expect(json.NewDecoder(w.Body).Decode(&results)).To(Succeed())
			Expect(results).To(HaveLen(1))
			Expect(results[0].ID).To(Equal(first.ID))
		})

		It("should let a storekeeper inspect another user's assignments", func() {
			first := createItem("Bosch Drill")
			_, err := service.Assign(first.ID, employee.ID)
			Expect(err).NotTo(HaveOccurred())

			w := do(http.MethodGet, fmt.Sprintf("/items/assigned?userId=%d", employee.ID), nil, storekeeper)

			Expect(w.Code).To(Equal(http.StatusOK))

			var results []item.Item
			Expect(json.NewDecoder(w.Body).Decode(&results)).To(Succeed())
			Expect(results).To(HaveLen(1))
		})

		It("should refuse an employee inspecting someone else", func() {
			w := do(http.MethodGet, fmt.Sprintf("/items/assigned?userId=%d", employee.ID), nil, otherUser)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("DELETE /items/{id}", func() {
		It("should remove the item", func() {
			it := createItem("Bosch Drill")

			w := do(http.MethodDelete, fmt.Sprintf("/items/%d", it.ID), nil, storekeeper)

			Expect(w.Code).To(Equal(http.StatusOK))

			w = do(http.MethodGet, fmt.Sprintf("/items/%d", it.ID), nil, storekeeper)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
