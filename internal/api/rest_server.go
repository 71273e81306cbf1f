package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/annel0/dig-game/internal/auth"
	"github.com/annel0/dig-game/internal/middleware"
	"github.com/annel0/dig-game/internal/world"
	"github.com/annel0/dig-game/internal/world/tile"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RestServer представляет REST API сервер
type RestServer struct {
	router   *gin.Engine
	userRepo auth.UserRepository
	world    *world.World
	port     string
	metrics  *ServerMetrics
	srv      *http.Server
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port     string              // порт для запуска сервера
	UserRepo auth.UserRepository // репозиторий пользователей
	World    *world.World        // игровой мир
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	router.Use(otelgin.Middleware("rest_api"))

	promMw := middleware.NewPrometheusMiddleware("rest_api")
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:   router,
		userRepo: config.UserRepo,
		world:    config.World,
		port:     config.Port,
		metrics:  NewServerMetrics(),
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Группа API
	api := rs.router.Group("/api")

	// Эндпоинты аутентификации (без JWT защиты)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", rs.handleRegister)
		authGroup.POST("/login", rs.handleLogin)
	}

	// Защищенные эндпоинты (требуют JWT)
	protected := api.Group("/")
	protected.Use(rs.jwtMiddleware())
	{
		worldGroup := protected.Group("/world")
		{
			worldGroup.POST("/interact", rs.handleInteract)
			worldGroup.POST("/explosive", rs.handlePlaceExplosive)
			worldGroup.GET("/tile/:x/:y", rs.handleGetTile)
			worldGroup.GET("/snapshot", rs.handleSnapshot)
		}

		protected.GET("/stats", rs.handleStats)

		// Административные эндпоинты (только для админов)
		admin := protected.Group("/admin")
		admin.Use(rs.adminMiddleware())
		{
			admin.POST("/register", rs.handleAdminRegister)
		}
	}

	// Health check и статус сервера
	rs.router.GET("/health", rs.handleHealth)
	rs.router.GET("/status", rs.handleStatus)
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse представляет ответ на вход
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
	UserID  uint64 `json:"user_id,omitempty"`
	IsAdmin bool   `json:"is_admin,omitempty"`
}

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

// InteractRequest представляет событие указателя на клетке мира
type InteractRequest struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Event string `json:"event" binding:"required"`
}

// PlaceExplosiveRequest представляет запрос на установку взрывчатки
type PlaceExplosiveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// handleRegister обрабатывает саморегистрацию игрока
func (rs *RestServer) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса",
		})
		return
	}

	// Саморегистрация никогда не выдает админские права
	rs.createUser(c, req.Username, req.Password, false)
}

// handleAdminRegister обрабатывает регистрацию нового пользователя (только для админов)
func (rs *RestServer) handleAdminRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса",
		})
		return
	}

	rs.createUser(c, req.Username, req.Password, req.IsAdmin)
}

func (rs *RestServer) createUser(c *gin.Context, username, password string, isAdmin bool) {
	// Валидация входных данных
	if len(username) < 3 || len(username) > 30 {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Имя пользователя должно быть от 3 до 30 символов",
		})
		return
	}

	if len(password) < 6 {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Пароль должен быть минимум 6 символов",
		})
		return
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка обработки пароля",
		})
		return
	}

	user, err := rs.userRepo.CreateUser(username, passwordHash, isAdmin)
	if err == auth.ErrUserExists {
		c.JSON(http.StatusConflict, GenericResponse{
			Success: false,
			Message: "Пользователь уже существует",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка создания пользователя",
		})
		return
	}

	c.JSON(http.StatusCreated, GenericResponse{
		Success: true,
		Message: "Пользователь успешно создан",
		Data: map[string]interface{}{
			"user_id":  user.ID,
			"username": user.Username,
			"is_admin": user.IsAdmin,
		},
	})
}

// handleLogin обрабатывает запрос на вход
func (rs *RestServer) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, LoginResponse{
			Success: false,
			Message: "Неверный формат запроса",
		})
		return
	}

	user, err := rs.userRepo.ValidateCredentials(req.Username, req.Password)
	if err == auth.ErrUserNotFound || err == auth.ErrInvalidCredentials {
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Success: false,
			Message: "Неверное имя пользователя или пароль",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, LoginResponse{
			Success: false,
			Message: "Внутренняя ошибка сервера",
		})
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, LoginResponse{
			Success: false,
			Message: "Ошибка генерации токена",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Token:   token,
		Message: "Успешная авторизация",
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	})
}

// pointerEvents сопоставляет имена событий из запросов с внутренними событиями
var pointerEvents = map[string]tile.PointerEvent{
	"enter":       tile.PointerEnter,
	"leave":       tile.PointerLeave,
	"click":       tile.PointerClick,
	"right_click": tile.PointerRightClick,
	"down":        tile.PointerDown,
	"up":          tile.PointerUp,
	"hold":        tile.PointerHold,
}

// handleInteract маршрутизирует событие указателя в мир
func (rs *RestServer) handleInteract(c *gin.Context) {
	var req InteractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса",
		})
		return
	}

	ev, ok := pointerEvents[req.Event]
	if !ok {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неизвестное событие: " + req.Event,
		})
		return
	}

	if !rs.world.Interact(req.X, req.Y, ev) {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Клетка не найдена",
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Событие обработано",
		Data: map[string]interface{}{
			"stats": rs.world.StatsCopy(),
		},
	})
}

// handlePlaceExplosive устанавливает собранную взрывчатку в пустую клетку
func (rs *RestServer) handlePlaceExplosive(c *gin.Context) {
	var req PlaceExplosiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса",
		})
		return
	}

	if err := rs.world.PlaceExplosive(req.X, req.Y); err != nil {
		c.JSON(http.StatusConflict, GenericResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Взрывчатка установлена",
		Data: map[string]interface{}{
			"stats": rs.world.StatsCopy(),
		},
	})
}

// handleGetTile возвращает состояние одной клетки
func (rs *RestServer) handleGetTile(c *gin.Context) {
	x, err := strconv.Atoi(c.Param("x"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверная координата x",
		})
		return
	}
	y, err := strconv.Atoi(c.Param("y"))
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверная координата y",
		})
		return
	}

	// Точечный запрос идет через мьютекс мира: цикл симуляции работает
	// в своей горутине, а чтение света мутирует кэши.
	info, ok := rs.world.TileInfo(x, y)
	if !ok {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Клетка не найдена",
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Клетка найдена",
		Data: map[string]interface{}{
			"x":          x,
			"y":          y,
			"type":       info.Type,
			"name":       info.Name,
			"sprite":     info.Sprite,
			"light":      info.Light,
			"mask":       info.Mask,
			"accessible": info.Accessible,
			"mineable":   info.Mineable,
			"break_anim": info.BreakAnim,
		},
	})
}

// handleSnapshot возвращает сжатый zstd снимок мира
func (rs *RestServer) handleSnapshot(c *gin.Context) {
	snap := rs.world.BuildSnapshot()
	compressed, err := snap.Encode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Ошибка кодирования снимка",
		})
		return
	}

	c.Header("Content-Encoding", "zstd")
	c.Data(http.StatusOK, "application/json", compressed)
}

// handleStats возвращает статистику мира и сервера
func (rs *RestServer) handleStats(c *gin.Context) {
	stats := make(map[string]interface{})

	stats["world"] = rs.world.StatsCopy()

	memoryMB, _ := rs.metrics.GetMemoryUsage()
	cpuPercent, _ := rs.metrics.GetCPUUsage()

	stats["server"] = map[string]interface{}{
		"uptime":      rs.metrics.GetUptime(),
		"memory_mb":   fmt.Sprintf("%.2f", memoryMB),
		"cpu_percent": fmt.Sprintf("%.2f", cpuPercent),
		"server_time": time.Now().Unix(),
	}

	stats["memory_details"] = rs.metrics.GetDetailedMemoryStats()

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data:    stats,
	})
}

// handleStatus возвращает информацию о сервере
func (rs *RestServer) handleStatus(c *gin.Context) {
	memoryMB, _ := rs.metrics.GetMemoryUsage()
	cpuPercent, _ := rs.metrics.GetCPUUsage()

	info := map[string]interface{}{
		"version":     "v0.1.0",
		"name":        "Dig Game Server",
		"status":      "running",
		"uptime":      rs.metrics.GetUptime(),
		"tick":        rs.world.StatsCopy().Tick,
		"memory_mb":   fmt.Sprintf("%.1f", memoryMB),
		"cpu_percent": fmt.Sprintf("%.1f", cpuPercent),
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data:    info,
	})
}

// handleHealth проверка состояния сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Router возвращает gin-роутер (используется в тестах)
func (rs *RestServer) Router() *gin.Engine {
	return rs.router
}

// Start запускает REST сервер
func (rs *RestServer) Start() error {
	rs.srv = &http.Server{
		Addr:    rs.port,
		Handler: rs.router,
	}
	if err := rs.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop останавливает REST сервер
func (rs *RestServer) Stop(ctx context.Context) error {
	if rs.srv == nil {
		return nil
	}
	return rs.srv.Shutdown(ctx)
}
