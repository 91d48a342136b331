package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/BornToCode265/ADIS/internal/auth"
	"github.com/BornToCode265/ADIS/internal/middleware"
	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/pdf"
	"github.com/BornToCode265/ADIS/internal/services"
	"github.com/BornToCode265/ADIS/internal/utils"
)

type memUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (m *memUserRepo) Create(user *models.User) error {
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(id int) (*models.User, error) { return m.users[id], nil }

func (m *memUserRepo) GetByPhone(phone string) (*models.User, error) {
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) UsernameExists(username string) (bool, error) {
	u, _ := m.GetByUsername(username)
	return u != nil, nil
}

func (m *memUserRepo) UpdateProfile(user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) SetAdmin(userID int, isAdmin bool) error {
	if u, ok := m.users[userID]; ok {
		u.IsAdmin = isAdmin
	}
	return nil
}

func (m *memUserRepo) List() ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUserRepo) GetStats() (*models.UserStats, error) {
	return &models.UserStats{TotalUsers: len(m.users)}, nil
}

func (m *memUserRepo) RecentRegistrations(limit int) ([]*models.User, error) { return m.List() }

func (m *memUserRepo) RecentActivity(since time.Time, limit int) ([]*models.ActivityItem, error) {
	return nil, nil
}

type memOTPRepo struct {
	rows   []*models.OTPVerification
	nextID int64
}

func (m *memOTPRepo) Create(phone, code string, expiresAt time.Time) (int64, error) {
	m.nextID++
	m.rows = append(m.rows, &models.OTPVerification{
		ID: m.nextID, Phone: phone, OTPCode: code,
		ExpiresAt: expiresAt, CreatedAt: time.Now(),
	})
	return m.nextID, nil
}

func (m *memOTPRepo) Consume(phone, code string, now time.Time) (bool, error) {
	var latest *models.OTPVerification
	for _, r := range m.rows {
		if r.Phone == phone && r.OTPCode == code && !r.IsUsed && r.ExpiresAt.After(now) {
			if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
				latest = r
			}
		}
	}
	if latest == nil {
		return false, nil
	}
	latest.IsUsed = true
	return true, nil
}

type memProductRepo struct {
	products []*models.Product
	nextID   int
}

func (m *memProductRepo) Create(p *models.Product) error {
	m.nextID++
	p.ID = m.nextID
	p.RegistrationDate = time.Now()
	m.products = append(m.products, p)
	return nil
}

func (m *memProductRepo) Exists(productID string) (bool, error) {
	for _, p := range m.products {
		if p.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memProductRepo) GetByUserID(userID int) ([]*models.Product, error) {
	var out []*models.Product
	for _, p := range m.products {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProductRepo) GetByProductID(productID string, userID int) (*models.Product, error) {
	for _, p := range m.products {
		if p.ProductID == productID && p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memProductRepo) UpdateStatus(productID, status string) error {
	for _, p := range m.products {
		if p.ProductID == productID {
			p.Status = status
		}
	}
	return nil
}

func (m *memProductRepo) GetAll() ([]*models.Product, error) { return m.products, nil }

func (m *memProductRepo) GetStats() (*models.ProductStats, error) {
	s := &models.ProductStats{TotalProducts: len(m.products)}
	for _, p := range m.products {
		if p.Status == models.ProductStatusActive {
			s.ActiveProducts++
		}
	}
	return s, nil
}

func (m *memProductRepo) RecentActivity(since time.Time, limit int) ([]*models.ActivityItem, error) {
	return nil, nil
}

type memTelemetryRepo struct {
	readings []*models.SystemData
	nextID   int64
}

func (m *memTelemetryRepo) Create(d *models.SystemData) error {
	m.nextID++
	d.ID = m.nextID
	d.RecordedAt = time.Now()
	m.readings = append(m.readings, d)
	return nil
}

func (m *memTelemetryRepo) GetLatest(productID string) (*models.SystemData, error) {
	var latest *models.SystemData
	for _, d := range m.readings {
		if d.ProductID == productID {
			latest = d
		}
	}
	return latest, nil
}

func (m *memTelemetryRepo) GetHistory(productID string, days int) ([]*models.SystemData, error) {
	var out []*models.SystemData
	for _, d := range m.readings {
		if d.ProductID == productID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memTelemetryRepo) GetAverages(productID string, days int) (*models.SystemDataAverage, error) {
	return &models.SystemDataAverage{}, nil
}

func (m *memTelemetryRepo) GetSystemStats() (*models.SystemStats, error) {
	return &models.SystemStats{ActiveSystems: len(m.readings)}, nil
}

func (m *memTelemetryRepo) GetSystemHealth() (*models.SystemHealth, error) {
	return &models.SystemHealth{}, nil
}

type memCropRepo struct {
	crops  []*models.Crop
	nextID int
}

func (m *memCropRepo) Create(c *models.Crop) error {
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	m.crops = append(m.crops, c)
	return nil
}

func (m *memCropRepo) GetByUserID(userID int) ([]*models.Crop, error) {
	var out []*models.Crop
	for _, c := range m.crops {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCropRepo) GetByID(id, userID int) (*models.Crop, error) {
	for _, c := range m.crops {
		if c.ID == id && c.UserID == userID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCropRepo) Update(c *models.Crop) error {
	for i, existing := range m.crops {
		if existing.ID == c.ID {
			m.crops[i] = c
		}
	}
	return nil
}

func (m *memCropRepo) Delete(id, userID int) (bool, error) {
	for i, c := range m.crops {
		if c.ID == id && c.UserID == userID {
			m.crops = append(m.crops[:i], m.crops[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memTicketRepo struct {
	tickets []*models.SupportTicket
	nextID  int
}

func (m *memTicketRepo) Create(t *models.SupportTicket) error {
	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = time.Now()
	m.tickets = append(m.tickets, t)
	return nil
}

func (m *memTicketRepo) GetByUserID(userID int) ([]*models.SupportTicket, error) {
	var out []*models.SupportTicket
	for _, t := range m.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTicketRepo) GetAll() ([]*models.SupportTicket, error) { return m.tickets, nil }

func (m *memTicketRepo) GetByID(id int) (*models.SupportTicket, error) {
	for _, t := range m.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (m *memTicketRepo) UpdateStatus(id int, status string) error {
	for _, t := range m.tickets {
		if t.ID == id {
			t.Status = status
			now := time.Now()
			t.UpdatedAt = &now
		}
	}
	return nil
}

func (m *memTicketRepo) GetStats() (*models.TicketStats, error) {
	s := &models.TicketStats{TotalTickets: len(m.tickets)}
	for _, t := range m.tickets {
		if t.Status == models.TicketStatusOpen {
			s.OpenTickets++
		}
	}
	return s, nil
}

func (m *memTicketRepo) RecentActivity(since time.Time, limit int) ([]*models.ActivityItem, error) {
	return nil, nil
}

type memDocumentRepo struct {
	docs   []*models.Document
	nextID int
}

func (m *memDocumentRepo) Create(d *models.Document) error {
	m.nextID++
	d.ID = m.nextID
	d.CreatedAt = time.Now()
	m.docs = append(m.docs, d)
	return nil
}

func (m *memDocumentRepo) ListPublic() ([]*models.Document, error) {
	var out []*models.Document
	for _, d := range m.docs {
		if d.IsPublic {
			out = append(out, d)
		}
	}
	return out, nil
}

// capturingSMS records every message so tests can read the code a real
// farmer would receive by SMS.
type capturingSMS struct {
	sent []string
}

func (s *capturingSMS) SendSMS(to, text string) (*utils.SendSMSResponse, error) {
	s.sent = append(s.sent, text)
	return &utils.SendSMSResponse{}, nil
}

func (s *capturingSMS) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, s.sent)
	text := s.sent[len(s.sent)-1]
	for i := 0; i+6 <= len(text); i++ {
		code := text[i : i+6]
		ok := true
		for _, r := range code {
			if r < '0' || r > '9' {
				ok = false
				break
			}
		}
		if ok {
			return code
		}
	}
	t.Fatalf("no 6-digit code in message %q", text)
	return ""
}

type testEnv struct {
	router    *gin.Engine
	users     *memUserRepo
	products  *memProductRepo
	telemetry *memTelemetryRepo
	crops     *memCropRepo
	tickets   *memTicketRepo
	docs      *memDocumentRepo
	sms       *capturingSMS
	codec     *auth.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUserRepo()
	otpRepo := &memOTPRepo{}
	productRepo := &memProductRepo{}
	telemetryRepo := &memTelemetryRepo{}
	cropRepo := &memCropRepo{}
	ticketRepo := &memTicketRepo{}
	docRepo := &memDocumentRepo{}
	sms := &capturingSMS{}
	codec := auth.NewCodec("test-secret", time.Hour)

	otpService := services.NewOTPService(otpRepo, sms, 5*time.Minute)
	authService := services.NewAuthService(users, otpService, codec)
	userService := services.NewUserService(users, authService)
	productService := services.NewProductService(productRepo, telemetryRepo, nil)
	cropService := services.NewCropService(cropRepo)
	ticketService := services.NewTicketService(ticketRepo, nil)
	dashboardService := services.NewDashboardService(productRepo, cropRepo, ticketRepo, telemetryRepo)
	adminService := services.NewAdminService(users, productRepo, ticketRepo, telemetryRepo)

	authHandler := NewAuthHandler(authService, otpService)
	userHandler := NewUserHandler(userService, authService)
	productHandler := NewProductHandler(productService)
	cropHandler := NewCropHandler(cropService)
	supportHandler := NewSupportHandler(ticketService, userService, docRepo, t.TempDir())
	dashboardHandler := NewDashboardHandler(dashboardService)
	adminHandler := NewAdminHandler(adminService, pdf.NewReportGenerator())

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/send-otp", authHandler.SendOTP)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/users/register", userHandler.Register)
	api.POST("/products/data", productHandler.IngestData)
	api.GET("/support/documents", supportHandler.ListDocuments)
	api.POST("/support/documents", middleware.Auth(codec), middleware.RequireAdmin(), supportHandler.UploadDocument)

	protected := api.Group("", middleware.Auth(codec))
	protected.POST("/auth/refresh-token", authHandler.RefreshToken)
	protected.GET("/users/profile", userHandler.GetProfile)
	protected.PUT("/users/profile", userHandler.UpdateProfile)
	protected.GET("/users/dashboard-data", dashboardHandler.Data)
	protected.POST("/products/register", productHandler.Register)
	protected.GET("/products/my-products", productHandler.MyProducts)
	protected.GET("/products/:productId/data", productHandler.GetData)
	protected.PUT("/products/:productId/settings", productHandler.UpdateSettings)
	protected.GET("/crops", cropHandler.List)
	protected.POST("/crops", cropHandler.Create)
	protected.PUT("/crops/:cropId", cropHandler.Update)
	protected.DELETE("/crops/:cropId", cropHandler.Delete)
	protected.GET("/support/tickets", supportHandler.MyTickets)
	protected.POST("/support/tickets", supportHandler.CreateTicket)
	protected.PUT("/support/tickets/:ticketId", supportHandler.UpdateTicket)
	protected.GET("/dashboard/data", dashboardHandler.Data)
	protected.GET("/dashboard/analytics", dashboardHandler.Analytics)

	admin := api.Group("/admin", middleware.Auth(codec), middleware.RequireAdmin())
	admin.GET("/users", adminHandler.Users)
	admin.PUT("/users/:userId/status", adminHandler.UpdateUserStatus)
	admin.GET("/products", adminHandler.Products)
	admin.GET("/tickets", adminHandler.Tickets)
	admin.PUT("/tickets/:ticketId/status", adminHandler.UpdateTicketStatus)
	admin.GET("/analytics", adminHandler.Analytics)
	admin.GET("/overview", adminHandler.Overview)
	admin.GET("/reports/overview", adminHandler.OverviewReport)

	return &testEnv{
		router:    r,
		users:     users,
		products:  productRepo,
		telemetry: telemetryRepo,
		crops:     cropRepo,
		tickets:   ticketRepo,
		docs:      docRepo,
		sms:       sms,
		codec:     codec,
	}
}

// newFarmer registers a user through the API and hands back its id and
// session token.
func (env *testEnv) newFarmer(t *testing.T, phone string) (int, string) {
	t.Helper()
	body := registerFarmer(t, env, phone)
	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	return int(user["id"].(float64)), data["token"].(string)
}

// adminToken promotes the user and mints a token carrying the admin
// claim, the way a fresh login after promotion would.
func (env *testEnv) adminToken(t *testing.T, userID int) string {
	t.Helper()
	require.NoError(t, env.users.SetAdmin(userID, true))
	u := env.users.users[userID]
	token, err := env.codec.Encode(auth.Claims{UserID: u.ID, Phone: u.Phone, IsAdmin: true})
	require.NoError(t, err)
	return token
}

func (env *testEnv) doJSON(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
