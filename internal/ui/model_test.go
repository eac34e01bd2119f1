package ui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flavono123/nestform/internal/export"
	"github.com/flavono123/nestform/internal/schema"
	"github.com/flavono123/nestform/internal/ui/event"
	"github.com/flavono123/nestform/internal/ui/preview"
)

// cmdTimeout drops timer driven commands such as cursor blinks and the
// status hide tick.
const cmdTimeout = 50 * time.Millisecond

func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// send feeds msg to the model and keeps feeding back whatever the returned
// commands produce, like the program loop would.
func send(m *mainModel, msg tea.Msg) {
	_, cmd := m.Update(msg)
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := run(c).(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func keys(m *mainModel, ks ...string) {
	for _, k := range ks {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		send(m, msg)
	}
}

var _ = Describe("mainModel", func() {
	var (
		tree      *schema.Tree
		m         *mainModel
		submitted []schema.Document
		submitErr error
	)

	BeforeEach(func() {
		tree = schema.NewTree()
		submitted = nil
		submitErr = nil
		m = InitModel(tree, Options{
			Format: export.FormatJSON,
			Submit: func(doc schema.Document) error {
				if submitErr != nil {
					return submitErr
				}
				submitted = append(submitted, doc)
				return nil
			},
		})
		send(m, tea.WindowSizeMsg{Width: 160, Height: 40})
	})

	It("should default to json", func() {
		Expect(InitModel(tree, Options{}).opts.Format).To(Equal(export.FormatJSON))
	})

	It("should build a nested document from key presses", func() {
		// name the seeded field and make it nested
		keys(m, "enter", "address", "enter", "t", "nes", "enter")
		Expect(m.picker.Visible()).To(BeFalse())

		// the seeded child is right below
		keys(m, "down", "enter", "city", "enter", "t", "str", "enter")

		// add a sibling at the root through its add line
		keys(m, "down", "down", "enter", "enter", "zip", "enter", "t", "num", "enter")

		keys(m, "ctrl+s")
		Expect(submitted).To(HaveLen(1))

		b, err := export.Marshal(submitted[0], export.FormatJSON)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(MatchJSON(`{"fields": [
			{"name": "address", "type": "nested", "fields": [{"name": "city", "type": "string"}]},
			{"name": "zip", "type": "number"}
		]}`))

		Expect(m.status).To(Equal("submitted 2 top-level fields as json"))
		Expect(m.statusKind).To(Equal(event.Info))
		Expect(m.preview.Mode()).To(Equal(preview.DocumentMode))
	})

	It("should route keys to the picker while it is open", func() {
		keys(m, "t", "d")
		Expect(m.picker.Visible()).To(BeTrue())
		Expect(tree.Snapshot().Fields).To(HaveLen(1))

		keys(m, "esc")
		Expect(m.picker.Visible()).To(BeFalse())
		f, err := tree.Field(schema.Path{0})
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Type).To(Equal(schema.TypeUnset))
	})

	It("should type main bindings into the name while editing", func() {
		keys(m, "enter")
		send(m, tea.KeyMsg{Type: tea.KeyTab})
		Expect(m.preview.Mode()).To(Equal(preview.SnapshotMode))
		Expect(m.editor.Editing()).To(BeTrue())
	})

	It("should toggle the preview", func() {
		keys(m, "tab")
		Expect(m.preview.Mode()).To(Equal(preview.DocumentMode))
		keys(m, "tab")
		Expect(m.preview.Mode()).To(Equal(preview.SnapshotMode))
	})

	It("should surface a failed submit", func() {
		submitErr = errors.New("disk full")
		keys(m, "ctrl+s")

		Expect(submitted).To(BeEmpty())
		Expect(m.status).To(Equal("submit failed: disk full"))
		Expect(m.statusKind).To(Equal(event.Error))
		Expect(m.View()).To(ContainSubstring("submit failed: disk full"))
	})

	It("should submit an empty document when nothing is complete", func() {
		keys(m, "ctrl+s")
		Expect(submitted).To(HaveLen(1))
		Expect(submitted[0].Fields).To(BeEmpty())
	})

	It("should keep the preview in sync with edits", func() {
		keys(m, "enter", "age", "enter")
		Expect(m.preview.Content()).To(ContainSubstring(`"name": "age"`))
	})

	DescribeTable("should fit the terminal width",
		func(width int) {
			send(m, tea.WindowSizeMsg{Width: width, Height: 30})
			keys(m, "enter", strings.Repeat("x", 2*width), "enter", "t", "nes", "enter")

			for _, line := range strings.Split(m.View(), "\n") {
				Expect(lipgloss.Width(line)).To(BeNumerically("<=", width))
			}
		},
		Entry("80 columns", 80),
		Entry("81 columns", 81),
		Entry("120 columns", 120),
		Entry("160 columns", 160),
	)

	It("should render the picker alone while it is open", func() {
		keys(m, "t")
		Expect(m.View()).To(ContainSubstring("nested"))
		Expect(m.View()).NotTo(ContainSubstring("+ add field"))
	})
})
