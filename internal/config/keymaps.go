package config

// KeyMappings defines the configurable board key bindings.
type KeyMappings struct {
	// Tasks
	AddTask       string `yaml:"add_task"`
	EditTask      string `yaml:"edit_task"`
	DeleteTask    string `yaml:"delete_task"`
	ToggleDone    string `yaml:"toggle_done"`
	CyclePriority string `yaml:"cycle_priority"`
	EditTags      string `yaml:"edit_tags"`
	MoveTaskLeft  string `yaml:"move_task_left"`
	MoveTaskRight string `yaml:"move_task_right"`
	MoveTaskUp    string `yaml:"move_task_up"`
	MoveTaskDown  string `yaml:"move_task_down"`

	// Lists
	CreateList string `yaml:"create_list"`
	RenameList string `yaml:"rename_list"`
	DeleteList string `yaml:"delete_list"`

	// Navigation
	PrevList string `yaml:"prev_list"`
	NextList string `yaml:"next_list"`
	PrevTask string `yaml:"prev_task"`
	NextTask string `yaml:"next_task"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings.
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddTask:       "a",
		EditTask:      "e",
		DeleteTask:    "d",
		ToggleDone:    " ",
		CyclePriority: "p",
		EditTags:      "t",
		MoveTaskLeft:  "H",
		MoveTaskRight: "L",
		MoveTaskUp:    "K",
		MoveTaskDown:  "J",

		CreateList: "N",
		RenameList: "R",
		DeleteList: "D",

		PrevList: "h",
		NextList: "l",
		PrevTask: "k",
		NextTask: "j",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// mergeFrom fills empty bindings from def, so partial config files work.
func (k *KeyMappings) mergeFrom(def KeyMappings) {
	merge := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	merge(&k.AddTask, def.AddTask)
	merge(&k.EditTask, def.EditTask)
	merge(&k.DeleteTask, def.DeleteTask)
	merge(&k.ToggleDone, def.ToggleDone)
	merge(&k.CyclePriority, def.CyclePriority)
	merge(&k.EditTags, def.EditTags)
	merge(&k.MoveTaskLeft, def.MoveTaskLeft)
	merge(&k.MoveTaskRight, def.MoveTaskRight)
	merge(&k.MoveTaskUp, def.MoveTaskUp)
	merge(&k.MoveTaskDown, def.MoveTaskDown)
	merge(&k.CreateList, def.CreateList)
	merge(&k.RenameList, def.RenameList)
	merge(&k.DeleteList, def.DeleteList)
	merge(&k.PrevList, def.PrevList)
	merge(&k.NextList, def.NextList)
	merge(&k.PrevTask, def.PrevTask)
	merge(&k.NextTask, def.NextTask)
	merge(&k.ShowHelp, def.ShowHelp)
	merge(&k.Quit, def.Quit)
}
