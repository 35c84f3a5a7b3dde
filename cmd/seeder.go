package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with baseline data",
	Long:  `Seed the database with baseline permissions, roles, departments and users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"user_document_access", "department_document_access", "tag_documents",
				"document_versions", "documents", "tags", "role_permissions",
				"user_roles", "user_departments", "permissions", "roles",
				"departments", "users",
			} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		permissions := []struct {
			Name string
			Desc string
		}{
			{"read_document", "Can read documents and their versions"},
			{"write_document", "Can add versions and manage tags"},
			{"share_document", "Can grant document access to users and departments"},
			{"admin", "Full administrator"},
		}

		for _, p := range permissions {
			var pid int64
			row := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row()
			if err := row.Scan(&pid); err != nil {
				if err := db.Exec("INSERT INTO permissions (name, description) VALUES (?, ?)", p.Name, p.Desc).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Name, err)
				}
				fmt.Println("Seeded permission:", p.Name)
			}
		}

		roles := map[string][]string{
			"viewer": {"read_document"},
			"editor": {"read_document", "write_document"},
			"admin":  {"read_document", "write_document", "share_document", "admin"},
		}

		for _, roleName := range []string{"viewer", "editor", "admin"} {
			var rid int64
			row := db.Raw("SELECT id FROM roles WHERE name = ?", roleName).Row()
			if err := row.Scan(&rid); err != nil {
				if err := db.Exec("INSERT INTO roles (name) VALUES (?)", roleName).Error; err != nil {
					log.Fatalf("failed to insert role %s: %v", roleName, err)
				}
				if err := db.Raw("SELECT id FROM roles WHERE name = ?", roleName).Row().Scan(&rid); err != nil {
					log.Fatalf("role not found after insert %s: %v", roleName, err)
				}
				fmt.Println("Seeded role:", roleName)
			}

			for _, permName := range roles[roleName] {
				var pid int64
				if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permName).Row().Scan(&pid); err != nil {
					log.Fatalf("permission not found %s: %v", permName, err)
				}

				var exists int
				if err := db.Raw("SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?", rid, pid).Row().Scan(&exists); err == nil {
					continue
				}

				if err := db.Exec("INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)", rid, pid).Error; err != nil {
					log.Fatalf("failed to attach permission %s to role %s: %v", permName, roleName, err)
				}
			}
		}

		var deptID int64
		if err := db.Raw("SELECT id FROM departments WHERE name = ?", "Engineering").Row().Scan(&deptID); err != nil {
			if err := db.Exec("INSERT INTO departments (name) VALUES (?)", "Engineering").Error; err != nil {
				log.Fatalf("failed to insert department: %v", err)
			}
			fmt.Println("Seeded department: Engineering")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		adminEmail := "admin@mail.com"
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row().Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO users (email, name, password_hash, created_at) VALUES (?, ?, ?, now())", adminEmail, "Admin", string(hash)).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		}

		var adminUserID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", adminEmail).Row().Scan(&adminUserID); err != nil {
			log.Fatalf("failed to lookup admin user id: %v", err)
		}

		var adminRoleID int64
		if err := db.Raw("SELECT id FROM roles WHERE name = ?", "admin").Row().Scan(&adminRoleID); err != nil {
			log.Fatalf("failed to lookup admin role id: %v", err)
		}

		if err := db.Raw("SELECT 1 FROM user_roles WHERE user_id = ? AND role_id = ?", adminUserID, adminRoleID).Row().Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)", adminUserID, adminRoleID).Error; err != nil {
				log.Fatalf("failed to assign admin role: %v", err)
			}
			fmt.Println("Assigned admin role to:", adminEmail)
		}

		if err := db.Raw("SELECT id FROM departments WHERE name = ?", "Engineering").Row().Scan(&deptID); err != nil {
			log.Fatalf("failed to lookup department id: %v", err)
		}

		if err := db.Raw("SELECT 1 FROM user_departments WHERE user_id = ? AND department_id = ?", adminUserID, deptID).Row().Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO user_departments (user_id, department_id) VALUES (?, ?)", adminUserID, deptID).Error; err != nil {
				log.Fatalf("failed to add admin user to department: %v", err)
			}
		}

		fmt.Println("Seeding complete")
	},
}
