package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"school-portal/backend/internal/dto"
	"school-portal/backend/internal/model"
)

func TestPersonService_Update(t *testing.T) {
	svc, mocks := newTestEnv()
	seedStudent(mocks, "p1", "张三", "zhangsan@example.com")

	newName := "张三丰"
	resp, err := svc.Person.Update(context.Background(), "p1", &dto.UpdatePersonRequest{Name: &newName}, "admin-1")
	if err != nil {
		t.Fatalf("Update 失败: %v", err)
	}
	if resp.Name != "张三丰" {
		t.Errorf("更新后姓名 = %s, 期望 张三丰", resp.Name)
	}
	// 未提供的字段保持不变
	if resp.Email != "zhangsan@example.com" {
		t.Errorf("邮箱不应被改动, 实际 = %s", resp.Email)
	}

	stored := mocks.persons.persons["p1"]
	if stored.UpdatedBy == nil || *stored.UpdatedBy != "admin-1" {
		t.Error("更新应记录操作人")
	}
}

func TestPersonService_Delete_Self(t *testing.T) {
	svc, mocks := newTestEnv()
	seedAdmin(mocks, "a1", "管理员", "admin@example.com")

	if err := svc.Person.Delete(context.Background(), "a1", "a1"); !errors.Is(err, ErrSelfDelete) {
		t.Errorf("删除自己期望 ErrSelfDelete, 实际 = %v", err)
	}
}

func TestPersonService_AssignRole(t *testing.T) {
	svc, mocks := newTestEnv()
	student := seedStudent(mocks, "p1", "张三", "zhangsan@example.com")

	err := svc.Person.AssignRole(context.Background(), "p1", &dto.AssignRoleRequest{Role: model.RoleAdmin}, "admin-1")
	if err != nil {
		t.Fatalf("AssignRole 失败: %v", err)
	}
	if student.Role == nil || student.Role.RoleName != model.RoleAdmin {
		t.Errorf("角色未更新, 实际 = %+v", student.Role)
	}

	// 不能修改自己的角色
	err = svc.Person.AssignRole(context.Background(), "p1", &dto.AssignRoleRequest{Role: model.RoleUser}, "p1")
	if !errors.Is(err, ErrSelfRoleChange) {
		t.Errorf("修改自己角色期望 ErrSelfRoleChange, 实际 = %v", err)
	}
}

func TestPersonService_List_FilterByRole(t *testing.T) {
	svc, mocks := newTestEnv()
	seedStudent(mocks, "p1", "张三", "zhangsan@example.com")
	seedAdmin(mocks, "a1", "管理员", "admin@example.com")

	list, total, err := svc.Person.List(context.Background(), &dto.PersonListRequest{Role: model.RoleStudent})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != "p1" {
		t.Errorf("按角色过滤结果不符合预期: total=%d list=%+v", total, list)
	}
}

// buildImportWorkbook 构造导入测试用的 Excel 文件
func buildImportWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("计算单元格坐标失败: %v", err)
			}
			if err := f.SetCellValue(sheet, axis, cell); err != nil {
				t.Fatalf("写入单元格失败: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("生成Excel失败: %v", err)
	}
	return buf
}

func TestPersonService_ParseImportFile(t *testing.T) {
	svc, _ := newTestEnv()

	buf := buildImportWorkbook(t, [][]string{
		{"姓名", "邮箱", "手机号"},
		{"张三", "zhangsan@example.com", "13800138000"},
		{"李四", "lisi@example.com", ""},
	})

	rows, err := svc.Person.ParseImportFile(buf)
	if err != nil {
		t.Fatalf("ParseImportFile 失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("解析行数 = %d, 期望 2", len(rows))
	}
	if rows[0].Name != "张三" || rows[0].Email != "zhangsan@example.com" || rows[0].Mobile != "13800138000" {
		t.Errorf("第一行解析不符合预期: %+v", rows[0])
	}
	if rows[1].Row != 3 {
		t.Errorf("第二行的行号 = %d, 期望 3", rows[1].Row)
	}
}

func TestPersonService_ParseImportFile_EnglishHeader(t *testing.T) {
	svc, _ := newTestEnv()

	// 支持英文表头且列序灵活
	buf := buildImportWorkbook(t, [][]string{
		{"email", "name"},
		{"zhangsan@example.com", "张三"},
	})

	rows, err := svc.Person.ParseImportFile(buf)
	if err != nil {
		t.Fatalf("ParseImportFile 失败: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "张三" || rows[0].Email != "zhangsan@example.com" {
		t.Errorf("解析结果不符合预期: %+v", rows)
	}
}

func TestPersonService_ParseImportFile_BadHeader(t *testing.T) {
	svc, _ := newTestEnv()

	buf := buildImportWorkbook(t, [][]string{
		{"工号", "部门"},
		{"001", "教务处"},
	})

	if _, err := svc.Person.ParseImportFile(buf); !errors.Is(err, ErrImportBadHeader) {
		t.Errorf("缺少必要列期望 ErrImportBadHeader, 实际 = %v", err)
	}
}

func TestPersonService_ParseImportFile_NoData(t *testing.T) {
	svc, _ := newTestEnv()

	buf := buildImportWorkbook(t, [][]string{
		{"姓名", "邮箱"},
	})

	if _, err := svc.Person.ParseImportFile(buf); !errors.Is(err, ErrImportNoData) {
		t.Errorf("只有表头期望 ErrImportNoData, 实际 = %v", err)
	}
}

func TestPersonService_ImportStudents(t *testing.T) {
	svc, mocks := newTestEnv()
	seedStudent(mocks, "p0", "已存在", "exists@example.com")

	resp, err := svc.Person.ImportStudents(context.Background(), []ImportStudentRow{
		{Row: 2, Name: "张三", Email: "zhangsan@example.com", Mobile: "13800138000"},
		{Row: 3, Name: "李四", Email: "exists@example.com"},
		{Row: 4, Name: "", Email: "noname@example.com"},
	}, "admin-1")
	if err != nil {
		t.Fatalf("ImportStudents 失败: %v", err)
	}

	if resp.Total != 3 || resp.Success != 1 || resp.Failed != 2 {
		t.Errorf("导入统计 = %+v, 期望 total=3 success=1 failed=2", resp)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("失败明细数 = %d, 期望 2", len(resp.Errors))
	}

	// 成功导入的学生：学生角色 + 初始密码 = "Sp"+手机号后6位
	imported, err := mocks.persons.GetByEmail(context.Background(), "zhangsan@example.com")
	if err != nil {
		t.Fatalf("导入学生未落库: %v", err)
	}
	if imported.RoleID != mocks.roles.roles[model.RoleStudent].RoleID {
		t.Error("导入学生应为学生角色")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(imported.PasswordHash), []byte("Sp138000")); err != nil {
		t.Error("初始密码应为 Sp+手机号后6位")
	}
	if imported.CreatedBy == nil || *imported.CreatedBy != "admin-1" {
		t.Error("导入学生应记录创建人")
	}
}
