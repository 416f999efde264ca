package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"github.com/sevnx/shift_backend/config"
	"github.com/sevnx/shift_backend/internal/db"
	"github.com/sevnx/shift_backend/internal/repositories"
	authService "github.com/sevnx/shift_backend/internal/services/auth"
)

type demoEmployee struct {
	employeeID string
	name       string
	role       string
	phone      string
}

type demoTask struct {
	name        string
	description string
	icon        string
	shift       string
}

// Наполняет базу демо-данными: штат магазина, полный каталог задач
// и смены на сегодня. Пароль у всех — 1234.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("📝 No .env file found, using environment variables")
	}
	cfg := config.NewConfig()

	store, err := db.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx, store); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	if err := db.SeedIfEmpty(ctx, store); err != nil {
		log.Fatalf("❌ Base seeding failed: %v", err)
	}

	users := repositories.NewUserRepository(store)
	tasks := repositories.NewTaskRepository(store)
	shifts := repositories.NewShiftRepository(store)
	leaves := repositories.NewLeaveRepository(store)

	log.Println("🌱 Seeding demo data...")
	seedStaff(ctx, users)
	seedTaskCatalog(ctx, store, tasks)
	seedTodayShifts(ctx, store, users, tasks, shifts)
	seedLeaves(ctx, users, leaves)
	log.Println("🎉 Demo data seeded successfully!")
}

func seedStaff(ctx context.Context, users *repositories.UserRepository) {
	passwordHash, err := authService.HashPassword("1234")
	if err != nil {
		log.Fatalf("❌ Hash password: %v", err)
	}

	staff := []demoEmployee{
		{"asst001", "วิชัย (ผช.ผจก)", "manager", "089-111-1111"},
		{"emp003", "นภา (พนักงาน)", "employee", "089-222-2222"},
		{"emp004", "ศักดิ์ (พนักงาน)", "employee", "089-333-3333"},
		{"emp005", "ดาว (พนักงาน)", "employee", "089-444-4444"},
		{"emp006", "เดือน (พนักงาน)", "employee", "089-555-5555"},
		{"emp007", "เสาร์ (พนักงาน)", "employee", "089-666-6666"},
		{"emp008", "อาทิตย์ (พนักงาน)", "employee", "089-777-7777"},
		{"emp009", "จันทร์ (พนักงาน)", "employee", "089-888-8888"},
		{"emp010", "อังคาร (พนักงาน)", "employee", "089-999-9999"},
		{"emp011", "พุธ (พนักงาน)", "employee", "089-000-0000"},
	}

	for _, emp := range staff {
		phone := emp.phone
		_, err := users.Create(ctx, repositories.CreateEmployeeParams{
			EmployeeID:   emp.employeeID,
			PasswordHash: passwordHash,
			Name:         emp.name,
			Role:         emp.role,
			Phone:        &phone,
		})
		switch {
		case errors.Is(err, repositories.ErrConflict):
			log.Printf("ℹ️ User %s already exists", emp.name)
		case err != nil:
			log.Printf("❌ Failed to add %s: %v", emp.name, err)
		default:
			log.Printf("✅ Added user: %s", emp.name)
		}
	}
}

// seedTaskCatalog деактивирует старые задачи и вставляет полный каталог.
// Жесткое удаление ломало бы исторические чек-листы смен.
func seedTaskCatalog(ctx context.Context, store *db.Store, tasks *repositories.TaskRepository) {
	if _, err := store.Exec(ctx, `UPDATE tasks SET is_active = 0`); err != nil {
		log.Fatalf("❌ Failed to retire old tasks: %v", err)
	}

	catalog := []demoTask{
		{"ยืนเครื่องแคชเชียร์", "บริการคิดเงินและเสนอสินค้าโปรโมชั่น", "cash-register", "all"},
		{"เติมสินค้า (Front Face)", "ดึงสินค้ามาด้านหน้าและเติมสินค้าที่ขาด", "boxes", "all"},
		{"ดูแลความสะอาดร้าน", "กวาดถูพื้น เช็ดกระจก และเทขยะ", "broom", "all"},
		{"ตรวจสอบสินค้าหมดอายุ", "เช็คสินค้ากลุ่ม Fresh Food ที่หมดอายุช่วงเช้า", "search-minus", "morning"},
		{"รับสินค้า DC", "ตรวจนับและรับเข้าสินค้าจากรถส่งของ (สาย)", "truck", "morning"},
		{"เตรียมอาหารเช้า/อุ่นร้อน", "เตรียมจุดอุ่นร้อน ซาลาเปา ไส้กรอก", "utensils", "morning"},
		{"เปิดร้าน/ชง All Café", "เตรียมเครื่องชงกาแฟและวัตถุดิบ", "coffee", "morning"},
		{"เติมตู้ Walk-in", "เติมน้ำเครื่องดื่มในตู้แช่เย็นด้านหลัง", "snowflake", "afternoon"},
		{"เคลียร์ยอดเงิน/ส่งยอด", "รวบรวมเงิน ส่งยอดขายรายผลัด", "file-invoice-dollar", "afternoon"},
		{"รับสินค้าช่วงบ่าย", "รับสินค้าประเภทนม/ขนมปัง (ถ้ามี)", "truck-loading", "afternoon"},
		{"ตรวจนับสต็อก (Cycle Count)", "นับสต็อกสินค้าตามหมวดหมู่ประจำวัน", "clipboard-list", "night"},
		{"ล้างเครื่อง All Café/Slurpee", "ถอดล้างทำความสะอาดเครื่องกดน้ำ/กาแฟ", "tint", "night"},
		{"ทำความสะอาดใหญ่ (Deep Clean)", "ขัดพื้น ล้างถังขยะ เช็ดเชลฟ์", "soap", "night"},
		{"เตรียมร้านรอบเช้า", "เตรียมแก้ว ถุง หลอด ให้พร้อมขายเช้า", "check-double", "night"},
	}

	for _, t := range catalog {
		description := t.description
		if _, err := tasks.Create(ctx, t.name, &description, t.icon, t.shift); err != nil {
			log.Printf("❌ Failed to add task %s: %v", t.name, err)
			continue
		}
		log.Printf("✅ Added task: %s", t.name)
	}
}

func seedTodayShifts(ctx context.Context, store *db.Store, users *repositories.UserRepository, tasks *repositories.TaskRepository, shifts *repositories.ShiftRepository) {
	today := time.Now().Format("2006-01-02")
	log.Printf("📅 Assigning shifts for %s...", today)

	// Пересоздаем день с нуля, связки задач уходят каскадом.
	if _, err := store.Exec(ctx, `DELETE FROM shifts WHERE shift_date = ?`, today); err != nil {
		log.Fatalf("❌ Failed to clear shifts: %v", err)
	}

	staff, err := users.List(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to list employees: %v", err)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	shiftTypes := []string{"morning", "afternoon", "night"}

	for i, emp := range staff {
		shiftType := shiftTypes[i%3]

		applicable, err := tasks.ListApplicable(ctx, shiftType)
		if err != nil {
			log.Fatalf("❌ Failed to list tasks: %v", err)
		}
		rnd.Shuffle(len(applicable), func(a, b int) {
			applicable[a], applicable[b] = applicable[b], applicable[a]
		})
		if len(applicable) > 2 {
			applicable = applicable[:2]
		}

		_, err = shifts.Create(ctx, repositories.CreateShiftParams{
			UserID:    emp.ID,
			ShiftDate: today,
			ShiftType: shiftType,
			Tasks:     applicable,
		})
		if err != nil {
			log.Printf("❌ Failed to assign shift for %s: %v", emp.Name, err)
			continue
		}
		log.Printf("  - Assigned %s to %s", emp.Name, shiftType)
	}
}

func seedLeaves(ctx context.Context, users *repositories.UserRepository, leaves *repositories.LeaveRepository) {
	user, err := users.GetByEmployeeID(ctx, "emp003")
	if err != nil {
		log.Printf("ℹ️ Skipping leave samples: %v", err)
		return
	}

	start := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 9).Format("2006-01-02")
	reason := "Family trip"
	if _, err := leaves.Create(ctx, user.ID, "vacation", start, end, &reason); err != nil {
		log.Printf("❌ Failed to add sample leave: %v", err)
		return
	}
	log.Printf("✅ Added sample leave request for %s", user.Name)
}
