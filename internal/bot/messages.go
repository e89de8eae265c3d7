package bot

import (
	"github.com/minhtran/troly_bot/internal/model"
	"github.com/minhtran/troly_bot/internal/service"
)

// Menu labels shown on the reply keyboard. An incoming message equal to one
// of these is a menu selection, whatever workflow the user was in.
const (
	noteButton     = "📝 ghi"
	reminderButton = "📌 nhắc"
	expenseButton  = "💸 chi"
	chatButton     = "🤖 chat"
)

const (
	welcomeMessage = "👋 Chào bạn! Đây là trợ lý ghi chú + AI. Hãy chọn lệnh bên dưới:"

	notePrompt     = "✏️ Nhập nội dung bạn muốn ghi chú:"
	reminderPrompt = "📌 Nhập việc - thời gian (VD: " + service.ReminderExample + "):"
	expensePrompt  = "💸 Nhập mục - tiền - đối tượng (VD: " + service.ExpenseExample + "):"
	chatPrompt     = "💬 Nhập câu hỏi bạn muốn ChatGPT trả lời:"

	noteSavedMessage     = "✅ Đã lưu vào *Ghi chú*!"
	reminderSavedMessage = "📌 Đã lưu vào *Nhắc việc*!"
	expenseSavedMessage  = "💸 Đã lưu vào *Chi tiêu*!"

	reminderSyntaxMessage = "❗ Sai cú pháp. VD: Gọi khách - 15h"
	expenseSyntaxMessage  = "❗ Sai cú pháp. VD: Mua cà phê - 25000 - Linh"

	storageErrorMessage   = "❌ Không lưu được vào bảng tính, bạn thử lại sau nhé."
	invalidCommandMessage = "⚠️ Lệnh không hợp lệ. Hãy dùng đúng nút hoặc cú pháp:"

	assistantReplyPrefix = "🤖 ChatGPT: "
	assistantErrorFormat = "⚠️ Lỗi kết nối GPT: %v"

	reportEmptyMessage = "📊 Tháng này chưa có khoản chi nào."
)

var menuModes = map[string]model.Mode{
	noteButton:     model.ModeNote,
	reminderButton: model.ModeReminder,
	expenseButton:  model.ModeExpense,
	chatButton:     model.ModeChat,
}

var workflowPrompts = map[model.Mode]string{
	model.ModeNote:     notePrompt,
	model.ModeReminder: reminderPrompt,
	model.ModeExpense:  expensePrompt,
	model.ModeChat:     chatPrompt,
}
