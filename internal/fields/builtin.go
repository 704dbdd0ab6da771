package fields

// Builtin returns the default field set used when no catalog or config is
// supplied. It mirrors the common core fields of a work-item tracker and
// includes the link-type pseudo field.
func Builtin() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "ID", ReferenceName: "System.Id", Type: TypeInteger},
		{Name: "Title", ReferenceName: "System.Title", Type: TypeString},
		{Name: "State", ReferenceName: "System.State", Type: TypeString},
		{Name: "Assigned To", ReferenceName: "System.AssignedTo", Type: TypeString},
		{Name: "Tags", ReferenceName: "System.Tags", Type: TypePlainText},
		{Name: "Description", ReferenceName: "System.Description", Type: TypeText},
		{Name: "History", ReferenceName: "System.History", Type: TypeHistory},
		{Name: "Created Date", ReferenceName: "System.CreatedDate", Type: TypeDateTime},
		{Name: "Changed Date", ReferenceName: "System.ChangedDate", Type: TypeDateTime},
		{Name: "Area Path", ReferenceName: "System.AreaPath", Type: TypeTreePath},
		{Name: "Iteration Path", ReferenceName: "System.IterationPath", Type: TypeTreePath},
		{Name: "Effort", ReferenceName: "Microsoft.VSTS.Scheduling.Effort", Type: TypeDouble},
		{Name: "Blocked", ReferenceName: "Microsoft.VSTS.CMMI.Blocked", Type: TypeBoolean},
		{Name: "Node GUID", ReferenceName: "System.NodeGuid", Type: TypeGuid},
		{Name: "Link Type", ReferenceName: "System.Links.LinkType", Type: TypeString},
	}
}
