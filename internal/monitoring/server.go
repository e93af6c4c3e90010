package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/surajbi2/secureIn-backend/internal/models"
)

// Server is the side-port operations dashboard for the security office. It
// exposes host and database stats and pushes every gate scan to connected
// browsers over a websocket.
type Server struct {
	db         *pgxpool.Pool
	port       int
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan ScanEvent
}

// ScanEvent is pushed to dashboard clients on every gate scan.
type ScanEvent struct {
	Action      string    `json:"action"`
	PassID      string    `json:"pass_id"`
	VisitorName string    `json:"visitor_name"`
	EventName   string    `json:"event_name,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Stats is the snapshot served at /api/stats.
type Stats struct {
	DatabaseStatus    string  `json:"database_status"`
	ActiveConnections int     `json:"active_connections"`
	ResponseTime      int64   `json:"response_time_ms"`
	DBSize            string  `json:"db_size"`
	Uptime            string  `json:"uptime"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	MemoryUsed        string  `json:"memory_used"`
	MemoryTotal       string  `json:"memory_total"`
	DiskPercent       float64 `json:"disk_percent"`
	DiskUsed          string  `json:"disk_used"`
	DiskTotal         string  `json:"disk_total"`
	PassesInside      int     `json:"passes_inside"`
	ScansToday        int     `json:"scans_today"`
	ConnectedClients  int     `json:"connected_clients"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewServer(db *pgxpool.Pool, port int) *Server {
	return &Server{
		db:        db,
		port:      port,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan ScanEvent, 64),
	}
}

// NotifyScan implements the scan feed hook for the pass service.
func (s *Server) NotifyScan(action string, pass *models.EntryPass) {
	event := ScanEvent{
		Action:      action,
		PassID:      pass.PassID,
		VisitorName: pass.VisitorName,
		Timestamp:   time.Now(),
	}
	if pass.EventName != nil {
		event.EventName = *pass.EventName
	}

	select {
	case s.broadcast <- event:
	default:
		// Feed is best-effort; drop rather than block a scan.
	}
}

func (s *Server) Start() {
	r := mux.NewRouter()

	r.HandleFunc("/", s.dashboardPage).Methods("GET")
	r.HandleFunc("/api/stats", s.getStats).Methods("GET")
	r.HandleFunc("/ws", s.handleWebSocket)

	go s.handleBroadcast()

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Monitoring] Dashboard running on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

const dashboardHTML = `<!DOCTYPE html>
<html>
<head><title>SecureIN Gate Monitor</title></head>
<body>
<h1>SecureIN Gate Monitor</h1>
<pre id="stats">loading...</pre>
<h2>Live Scans</h2>
<ul id="scans"></ul>
<script>
async function refresh() {
  const res = await fetch('/api/stats');
  document.getElementById('stats').textContent = JSON.stringify(await res.json(), null, 2);
}
refresh();
setInterval(refresh, 10000);

const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
ws.onmessage = (msg) => {
  const ev = JSON.parse(msg.data);
  const li = document.createElement('li');
  li.textContent = ev.timestamp + ' ' + ev.action.toUpperCase() + ' ' + ev.pass_id + ' ' + ev.visitor_name;
  document.getElementById('scans').prepend(li);
};
</script>
</body>
</html>`

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

func (s *Server) dashboardPage(w http.ResponseWriter, r *http.Request) {
	dashboardTmpl.Execute(w, nil)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	stats := s.collectStats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (s *Server) collectStats() Stats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := s.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	dbStatus := "healthy"
	if err != nil {
		dbStatus = "unhealthy"
	}

	var activeConns int
	s.db.QueryRow(ctx, "SELECT count(*) FROM pg_stat_activity").Scan(&activeConns)

	var dbSizeBytes int64
	s.db.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&dbSizeBytes)

	var uptimeSec int
	s.db.QueryRow(ctx, "SELECT EXTRACT(EPOCH FROM (NOW() - pg_postmaster_start_time()))::int").Scan(&uptimeSec)

	var passesInside int
	s.db.QueryRow(ctx, `
		SELECT count(*) FROM entry_passes
		WHERE deleted_at IS NULL AND entry_status = 'entered'
	`).Scan(&passesInside)

	var scansToday int
	s.db.QueryRow(ctx, `
		SELECT count(*) FROM entry_passes
		WHERE deleted_at IS NULL
		  AND (entry_time AT TIME ZONE 'Asia/Kolkata')::date = (CURRENT_TIMESTAMP AT TIME ZONE 'Asia/Kolkata')::date
	`).Scan(&scansToday)

	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	s.clientsMux.Lock()
	connected := len(s.clients)
	s.clientsMux.Unlock()

	return Stats{
		DatabaseStatus:    dbStatus,
		ActiveConnections: activeConns,
		ResponseTime:      responseTime,
		DBSize:            formatBytes(uint64(dbSizeBytes)),
		Uptime:            formatUptime(uptimeSec),
		CPUPercent:        cpuPercent,
		MemoryPercent:     memStats.UsedPercent,
		MemoryUsed:        formatBytes(memStats.Used),
		MemoryTotal:       formatBytes(memStats.Total),
		DiskPercent:       diskStats.UsedPercent,
		DiskUsed:          formatBytes(diskStats.Used),
		DiskTotal:         formatBytes(diskStats.Total),
		PassesInside:      passesInside,
		ScansToday:        scansToday,
		ConnectedClients:  connected,
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Monitoring] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.clientsMux.Lock()
	s.clients[conn] = true
	s.clientsMux.Unlock()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			s.clientsMux.Lock()
			delete(s.clients, conn)
			s.clientsMux.Unlock()
			break
		}
	}
}

func (s *Server) handleBroadcast() {
	for event := range s.broadcast {
		s.clientsMux.Lock()
		for client := range s.clients {
			if err := client.WriteJSON(event); err != nil {
				client.Close()
				delete(s.clients, client)
			}
		}
		s.clientsMux.Unlock()
	}
}
