package entities_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
)

var _ = Describe("User", func() {
	Describe("avaliação de permissões", func() {
		var sales *entities.User

		BeforeEach(func() {
			sales = &entities.User{
				Role: entities.RoleSales,
				Permissions: []entities.UserPermission{
					{Category: "customers", Action: "read"},
				},
			}
		})

		It("concede a constante mapeada a partir da categoria e ação", func() {
			Expect(sales.HasPermission(entities.PermissionCustomerView)).To(BeTrue())
		})

		It("nega constantes sem concessão", func() {
			Expect(sales.HasPermission(entities.PermissionCustomerDelete)).To(BeFalse())
		})

		It("não trata vendas como admin", func() {
			Expect(sales.IsAdmin()).To(BeFalse())
			Expect(sales.IsSales()).To(BeTrue())
			Expect(sales.IsCustomerService()).To(BeFalse())
		})

		It("não dá acesso à administração", func() {
			Expect(sales.CanAccessAdministration()).To(BeFalse())
		})

		It("sempre permite ver o dashboard", func() {
			empty := &entities.User{Role: entities.RoleSales}
			Expect(empty.HasPermission(entities.PermissionDashboardView)).To(BeTrue())
		})

		It("nega tudo para usuário nulo", func() {
			var nobody *entities.User
			for _, c := range entities.AllPermissionConstants {
				Expect(nobody.HasPermission(c)).To(BeFalse(), string(c))
			}
			Expect(nobody.HasRole(entities.RoleAdmin)).To(BeFalse())
			Expect(nobody.CanAccessAdministration()).To(BeFalse())
		})

		It("nega concessões malformadas ou sem mapeamento", func() {
			odd := &entities.User{
				Role: entities.RoleAdmin,
				Permissions: []entities.UserPermission{
					{Category: "", Action: "read"},
					{Category: "customers", Action: ""},
					{Category: "permissions", Action: "read"},
					{Category: "customer", Action: "read"},
					{Category: "customers", Action: "view"},
				},
			}
			for _, c := range entities.AllPermissionConstants {
				if c == entities.PermissionDashboardView {
					continue
				}
				Expect(odd.HasPermission(c)).To(BeFalse(), string(c))
			}
		})

		It("quantifica listas de permissões", func() {
			Expect(sales.HasAnyPermission(entities.PermissionBankView, entities.PermissionCustomerView)).To(BeTrue())
			Expect(sales.HasAllPermissions(entities.PermissionDashboardView, entities.PermissionCustomerView)).To(BeTrue())
			Expect(sales.HasAllPermissions(entities.PermissionCustomerView, entities.PermissionCustomerEdit)).To(BeFalse())
			Expect(sales.HasAnyPermission()).To(BeFalse())
			Expect(sales.HasAllPermissions()).To(BeTrue())
		})

		It("libera a administração por permissão, não por role", func() {
			support := &entities.User{
				Role:        entities.RoleCustomerService,
				Permissions: []entities.UserPermission{{Category: "users", Action: "read"}},
			}
			Expect(support.CanAccessAdministration()).To(BeTrue())

			admin := &entities.User{Role: entities.RoleAdmin}
			Expect(admin.IsAdmin()).To(BeTrue())
			Expect(admin.CanAccessAdministration()).To(BeFalse())
		})

		It("não aplica hierarquia entre roles", func() {
			admin := &entities.User{Role: entities.RoleAdmin}
			Expect(admin.HasRole(entities.RoleCustomerService)).To(BeFalse())
		})

		It("expõe as capacidades avaliadas", func() {
			caps := sales.Capabilities()
			Expect(caps).To(HaveLen(len(entities.AllPermissionConstants)))
			Expect(caps[entities.PermissionCustomerView]).To(BeTrue())
			Expect(caps[entities.PermissionDashboardView]).To(BeTrue())
			Expect(caps[entities.PermissionUserView]).To(BeFalse())
		})
	})

	Describe("PermissionConstantFor", func() {
		DescribeTable("categorias mapeadas",
			func(category, action string, expected entities.PermissionConstant) {
				c, ok := entities.PermissionConstantFor(category, action)
				Expect(ok).To(BeTrue())
				Expect(c).To(Equal(expected))
			},
			Entry("customers/read", "customers", "read", entities.PermissionCustomerView),
			Entry("banks/create", "banks", "create", entities.PermissionBankCreate),
			Entry("users/update", "users", "update", entities.PermissionUserEdit),
			Entry("roles/delete", "roles", "delete", entities.PermissionRoleDelete),
		)

		DescribeTable("sem mapeamento",
			func(category, action string) {
				_, ok := entities.PermissionConstantFor(category, action)
				Expect(ok).To(BeFalse())
			},
			Entry("permissions", "permissions", "read"),
			Entry("role_permissions", "role_permissions", "read"),
			Entry("dashboard", "dashboard", "read"),
			Entry("posts", "posts", "create"),
			Entry("ação desconhecida", "customers", "export"),
		)
	})

	Describe("NewUserPermission", func() {
		It("normaliza a concessão", func() {
			p, err := entities.NewUserPermission(" Customers ", "READ")
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(entities.UserPermission{Category: "customers", Action: "read"}))
		})

		It("rejeita concessões incompletas ou não canônicas", func() {
			_, err := entities.NewUserPermission("", "read")
			Expect(err).To(MatchError(entities.ErrInvalidGrant))

			_, err = entities.NewUserPermission("customers", "view")
			Expect(err).To(MatchError(entities.ErrInvalidGrant))
		})
	})

	Describe("Grant e Revoke", func() {
		It("não duplica concessões", func() {
			u := &entities.User{Role: entities.RoleSales}
			p := entities.UserPermission{Category: "banks", Action: "read"}

			Expect(u.Grant(p)).To(BeTrue())
			Expect(u.Grant(p)).To(BeFalse())
			Expect(u.HasPermission(entities.PermissionBankView)).To(BeTrue())

			Expect(u.Revoke(p)).To(BeTrue())
			Expect(u.Revoke(p)).To(BeFalse())
			Expect(u.HasPermission(entities.PermissionBankView)).To(BeFalse())
		})
	})
})
